// Command gentemplate generates the Excel import template for credentials.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Credentials"); err != nil {
		log.Fatal(err)
	}

	headers := []string{"title", "issuer", "issued_at", "expires_at", "skills", "description", "credential_url", "featured"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Credentials", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	rows := [][]string{
		{
			"Certified Kubernetes Administrator",
			"Cloud Native Computing Foundation",
			"2024-03-15",
			"2027-03-15",
			"kubernetes, containers, operations",
			"Hands-on cluster administration exam",
			"https://example.com/verify/cka-001",
			"true",
		},
		{
			"AWS Solutions Architect Associate",
			"Amazon Web Services",
			"2023-08-01",
			"",
			"aws, architecture",
			"",
			"",
			"false",
		},
	}
	for r, row := range rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				log.Fatal(err)
			}
			if err := f.SetCellValue("Credentials", cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	const output = "credentials-import-template.xlsx"
	if err := f.SaveAs(output); err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stat(output); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", output)
}
