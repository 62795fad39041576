// Package importer parses credential spreadsheets for bulk import. Each row
// becomes one Credential created through the repository; invalid rows are
// reported per row instead of aborting the whole import.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/content-manager/internal/models"
)

// Column indices for the credentials spreadsheet (0-based).
const (
	colTitle       = 0 // Column A
	colIssuer      = 1 // Column B
	colIssued      = 2 // Column C
	colExpires     = 3 // Column D
	colSkills      = 4 // Column E
	colDescription = 5 // Column F
	colURL         = 6 // Column G
	colFeatured    = 7 // Column H

	minRequiredColumns = 3
)

// dateLayout is the expected format of the issued/expires columns.
const dateLayout = "2006-01-02"

// RowError reports a validation failure for one spreadsheet row.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParsedRow pairs a valid credential with the 1-based spreadsheet row it came
// from, so failures after parsing can still be reported per row.
type ParsedRow struct {
	Row        int
	Credential models.Credential
}

// ParseCredentials reads the first sheet of an .xlsx workbook, skipping the
// header row, and returns the valid credentials plus per-row errors. Only an
// unreadable workbook is a hard failure.
func ParseCredentials(r io.Reader) ([]ParsedRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	parsed := make([]ParsedRow, 0, len(rows))
	rowErrors := make([]RowError, 0)

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1 // Excel rows are 1-based

		credential, parseErr := parseRow(row)
		if parseErr != "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Error: parseErr})
			continue
		}
		parsed = append(parsed, ParsedRow{Row: rowNum, Credential: credential})
	}

	return parsed, rowErrors, nil
}

func parseRow(row []string) (models.Credential, string) {
	var credential models.Credential

	if len(row) < minRequiredColumns {
		return credential, "row has too few columns"
	}

	credential.Title = strings.TrimSpace(cell(row, colTitle))
	if credential.Title == "" {
		return credential, "title is required"
	}

	credential.Issuer = strings.TrimSpace(cell(row, colIssuer))
	if credential.Issuer == "" {
		return credential, "issuer is required"
	}

	issued, err := time.Parse(dateLayout, strings.TrimSpace(cell(row, colIssued)))
	if err != nil {
		return credential, "issued date must be YYYY-MM-DD"
	}
	credential.IssuedAt = issued

	credential.Status = models.CredentialValid
	if raw := strings.TrimSpace(cell(row, colExpires)); raw != "" {
		expires, parseErr := time.Parse(dateLayout, raw)
		if parseErr != nil {
			return credential, "expires date must be YYYY-MM-DD"
		}
		if !expires.After(issued) {
			return credential, "expires date must be after issued date"
		}
		credential.ExpiresAt = &expires
		if credential.ExpiredAt(time.Now()) {
			credential.Status = models.CredentialExpired
		}
	}

	if raw := strings.TrimSpace(cell(row, colSkills)); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				credential.Skills = append(credential.Skills, skill)
			}
		}
	}

	credential.Description = strings.TrimSpace(cell(row, colDescription))
	credential.CredentialURL = strings.TrimSpace(cell(row, colURL))

	if raw := strings.TrimSpace(cell(row, colFeatured)); raw != "" {
		credential.Featured = strings.EqualFold(raw, "true") || raw == "1"
	}

	return credential, ""
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}
