// Package sheets implements the weather-history sink on top of a Google
// Spreadsheet.
//
// The sheet is append-only: every saved query becomes one row, newest at the
// bottom. History reads pull the whole value range back and return the most
// recent rows first. A spreadsheet is a deliberate choice here — the history
// doubles as a human-readable log the account owner can open directly.
//
// Authentication uses a Google service account: the JSON key is turned into
// an oauth2 JWT config scoped to the Sheets API, and the resulting client is
// handed to the generated sheets/v4 service.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/repository"
)

// valueRange covers the nine history columns on the first worksheet.
const valueRange = "Sheet1!A:I"

var headers = []interface{}{
	"Timestamp", "City", "Country", "Temperature (°C)",
	"Feels Like (°C)", "Humidity (%)", "Pressure (hPa)",
	"Description", "Wind Speed (m/s)",
}

// compile-time check that *Store implements repository.HistoryRepository
var _ repository.HistoryRepository = (*Store)(nil)

// Store is the Google-Sheets-backed history repository.
type Store struct {
	svc     *sheets.Service
	sheetID string
}

// New builds a Store from a service-account JSON key and the spreadsheet ID,
// and makes sure the header row exists.
func New(ctx context.Context, credentialsJSON []byte, sheetID string) (*Store, error) {
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parsing service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: creating service: %w", err)
	}

	s := &Store{svc: svc, sheetID: sheetID}
	if err := s.ensureHeaders(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureHeaders writes the header row if the sheet is empty or its first
// cell isn't the expected "Timestamp".
func (s *Store) ensureHeaders(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.sheetID, "Sheet1!A1:I1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: reading header row: %w", err)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 && cellString(resp.Values[0][0]) == "Timestamp" {
		return nil
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.sheetID, "Sheet1!A1:I1", &sheets.ValueRange{
		Values: [][]interface{}{headers},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: writing header row: %w", err)
	}

	return nil
}

// Append writes one history row. The timestamp column is stamped here, at
// save time, not taken from the weather data.
func (s *Store) Append(ctx context.Context, rec model.HistoryRecord) error {
	timestamp := rec.Timestamp
	if timestamp == "" {
		timestamp = time.Now().Format("2006-01-02 15:04:05")
	}

	row := []interface{}{
		timestamp,
		rec.City,
		rec.Country,
		rec.Temperature,
		rec.FeelsLike,
		rec.Humidity,
		rec.Pressure,
		rec.Description,
		rec.WindSpeed,
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.sheetID, valueRange, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return apperror.Persistence("Failed to save to Google Sheets", err)
	}

	return nil
}

// List returns at most limit records, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.sheetID, valueRange).Context(ctx).Do()
	if err != nil {
		return nil, apperror.Persistence("Failed to read from Google Sheets", err)
	}

	if len(resp.Values) <= 1 {
		return []model.HistoryRecord{}, nil // header only, or empty sheet
	}

	rows := resp.Values[1:] // skip header
	records := make([]model.HistoryRecord, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, parseRow(rows[i]))
	}

	return records, nil
}

// parseRow converts one sheet row back into a HistoryRecord. The Sheets API
// hands cells back as interface{} values; numbers that fail to parse
// (hand-edited cells, stray text) become 0 rather than failing the read.
func parseRow(row []interface{}) model.HistoryRecord {
	get := func(i int) string {
		if i < len(row) {
			return cellString(row[i])
		}
		return ""
	}

	humidity, _ := strconv.Atoi(get(5))
	return model.HistoryRecord{
		Timestamp:   get(0),
		City:        get(1),
		Country:     get(2),
		Temperature: parseFloat(get(3)),
		FeelsLike:   parseFloat(get(4)),
		Humidity:    humidity,
		Pressure:    parseFloat(get(6)),
		Description: get(7),
		WindSpeed:   parseFloat(get(8)),
	}
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func cellString(v interface{}) string {
	s, _ := v.(string)
	return s
}
