package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paccolajoao/yazio-consumer/models"
)

// CsvExporter writes the three report tables to a destination directory and
// returns the created file paths.
type CsvExporter struct{}

func NewCsvExporter() *CsvExporter { return &CsvExporter{} }

func (e *CsvExporter) Export(days []models.DayLog, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var created []string

	logPath := filepath.Join(outputDir, "nutrition_log.csv")
	if err := e.writeNutritionLog(days, logPath); err != nil {
		return nil, err
	}
	created = append(created, logPath)

	mealPath := filepath.Join(outputDir, "meal_summary.csv")
	if err := e.writeMealSummary(days, mealPath); err != nil {
		return nil, err
	}
	created = append(created, mealPath)

	dailyPath := filepath.Join(outputDir, "daily_summary.csv")
	if err := e.writeDailySummary(days, dailyPath); err != nil {
		return nil, err
	}
	created = append(created, dailyPath)

	return created, nil
}

func (e *CsvExporter) writeNutritionLog(days []models.DayLog, path string) error {
	records := [][]string{{"date", "meal", "product_name", "amount_g", "calories", "protein_g", "fat_g", "carbs_g"}}
	for _, row := range BuildNutritionLog(days) {
		records = append(records, []string{
			row.Date, row.Meal, row.ProductName,
			formatNum(row.AmountG), formatNum(row.Calories),
			formatNum(row.ProteinG), formatNum(row.FatG), formatNum(row.CarbsG),
		})
	}
	return writeCSV(path, records)
}

func (e *CsvExporter) writeMealSummary(days []models.DayLog, path string) error {
	records := [][]string{{"date", "meal", "calories"}}
	for _, row := range BuildMealSummary(days) {
		records = append(records, []string{row.Date, row.Meal, formatNum(row.Calories)})
	}
	return writeCSV(path, records)
}

func (e *CsvExporter) writeDailySummary(days []models.DayLog, path string) error {
	records := [][]string{{"date", "calories", "protein_g", "fat_g", "carbs_g"}}
	for _, row := range BuildDailySummary(days) {
		records = append(records, []string{
			row.Date, formatNum(row.Calories),
			formatNum(row.ProteinG), formatNum(row.FatG), formatNum(row.CarbsG),
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
