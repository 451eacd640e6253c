package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/intel"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler dumps all intel records as CSV or XLSX downloads.
type ExportHandler struct {
	Intel *intel.Store
}

func NewExportHandler(store *intel.Store) *ExportHandler {
	return &ExportHandler{Intel: store}
}

var exportHeaders = []string{"Symbol", "Fundamentals", "News Sentiment", "Social Sentiment", "Updated At"}

func exportRow(rec *models.StockIntel) []string {
	social := ""
	if rec.SocialSentiment != nil {
		social = string(*rec.SocialSentiment)
	}
	return []string{
		rec.Symbol,
		string(rec.Fundamentals),
		string(rec.NewsSentiment),
		social,
		rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ExportCSV streams all intel rows as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	recs, err := h.Intel.List()
	if err != nil {
		log.Printf("export csv: %v", err)
		util.Error(c, http.StatusInternalServerError, "could not load intel")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"intel_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range recs {
		writer.Write(exportRow(&recs[i]))
	}
}

// ExportXLSX streams all intel rows as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	recs, err := h.Intel.List()
	if err != nil {
		log.Printf("export xlsx: %v", err)
		util.Error(c, http.StatusInternalServerError, "could not load intel")
		return
	}

	f := excelize.NewFile()
	sheetName := "Stock Intel"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range recs {
		row := idx + 2
		for col, val := range exportRow(&recs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "D", 40)
	f.SetColWidth(sheetName, "E", "E", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"intel_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "export failed")
	}
}
