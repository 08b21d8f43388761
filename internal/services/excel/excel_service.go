package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artistlist/artistlist-backend/internal/database/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service exports campaign analytics to Excel files
type Service struct {
	artistRepo *repository.ArtistRepository
	adRepo     *repository.AdRepository
	exportsDir string
}

// NewExcelService creates a new Excel service instance
func NewExcelService(artistRepo *repository.ArtistRepository, adRepo *repository.AdRepository, exportsDir string) *Service {
	// Create exports directory if it doesn't exist
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		artistRepo: artistRepo,
		adRepo:     adRepo,
		exportsDir: exportsDir,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Filename string
	FilePath string
}

// ExportAdsReport writes an artist's campaign history and click analytics to
// an .xlsx file and returns its location.
func (s *Service) ExportAdsReport(artistID string) (*ExportResult, error) {
	artist, err := s.artistRepo.GetByID(artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	ads, err := s.adRepo.GetByArtistID(artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ads: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Campaigns"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Title", "Status", "Days", "End date", "Clicks", "Created"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, ad := range ads {
		days := ""
		if ad.AdDays != nil {
			days = fmt.Sprintf("%d", *ad.AdDays)
		}
		values := []interface{}{
			ad.Title,
			string(ad.Status),
			days,
			ad.AdEndDate.Format("2006-01-02"),
			ad.ClickCount,
			ad.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	// Summary block with the artist's lifetime counters
	summaryRow := len(ads) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total profile clicks")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), artist.ClickCount)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Active campaign clicks")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), artist.AdsClickCount)

	filename := fmt.Sprintf("ads_%s_%d_%s.xlsx", artistID, time.Now().Unix(), uuid.NewString()[:8])
	filePath := filepath.Join(s.exportsDir, filename)
	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	return &ExportResult{
		Filename: filename,
		FilePath: filePath,
	}, nil
}
