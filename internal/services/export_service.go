package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/repository"

	"github.com/phpdave11/gofpdf"
)

// ExportService エクスポートに関するサービスインターフェース
type ExportService interface {
	EntriesPDF(user *models.User) ([]byte, error)
}

// exportService ExportServiceの実装
type exportService struct {
	entryRepo repository.EntryRepository
}

// NewExportService ExportServiceを作成
func NewExportService(entryRepo repository.EntryRepository) ExportService {
	return &exportService{entryRepo: entryRepo}
}

// EntriesPDF ユーザーのエントリーをPDFにまとめる
// コアフォントを使うため、cp1252 に無い文字は変換できない
func (s *exportService) EntriesPDF(user *models.User) ([]byte, error) {
	entries, err := s.entryRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Journal of "+user.Username), false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Journal"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s <%s> - %d entries", user.Username, user.Email, len(entries))))
	pdf.Ln(10)

	for _, entry := range entries {
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(entry.Title), "", "L", false)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(110, 110, 110)
		meta := entry.CreatedAt.Format("2006-01-02 15:04")
		if len(entry.Tags) > 0 {
			names := make([]string, 0, len(entry.Tags))
			for _, tag := range entry.Tags {
				names = append(names, "#"+tag.Name)
			}
			meta += "  " + strings.Join(names, " ")
		}
		pdf.Cell(0, 5, tr(meta))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(20, 20, 20)
		pdf.MultiCell(0, 6, tr(entry.Content), "", "L", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
