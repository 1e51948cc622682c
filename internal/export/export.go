package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"

	"github.com/zhales05/college-football-rankings/internal/pipeline"
	"github.com/zhales05/college-football-rankings/internal/ranking"
	"github.com/zhales05/college-football-rankings/internal/season"
)

// WriteJSON writes v indented to path, creating parent directories.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

// CSV writes rank,team,wins,losses,score rows. Team names are quoted.
func CSV(w io.Writer, rankings []ranking.Ranking) error {
	if _, err := fmt.Fprintln(w, "rank,team,wins,losses,score"); err != nil {
		return err
	}
	for _, r := range rankings {
		if _, err := fmt.Fprintf(w, "%d,%q,%d,%d,%.6f\n", r.Rank, r.Team, r.Wins, r.Losses, r.Score); err != nil {
			return err
		}
	}
	return nil
}

// Table writes an aligned text table for terminals.
func Table(w io.Writer, rankings []ranking.Ranking) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTEAM\tW\tL\tSCORE")
	for _, r := range rankings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.4f\n", r.Rank, r.Team, r.Wins, r.Losses, r.Score)
	}
	return tw.Flush()
}

// Excel builds a workbook: a Rankings sheet plus a Teams sheet listing
// every ranked team's games in rank order. The caller saves it with SaveAs.
func Excel(sr *pipeline.SeasonRankings, logs map[string][]season.GameLine) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeRankingsSheet(f, sr); err != nil {
		return nil, fmt.Errorf("writing rankings sheet: %w", err)
	}
	if err := writeTeamsSheet(f, sr, logs); err != nil {
		return nil, fmt.Errorf("writing teams sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeRankingsSheet(f *excelize.File, sr *pipeline.SeasonRankings) error {
	sheet := "Rankings"
	f.NewSheet(sheet)

	headers := []string{"Rank", "Team", "W", "L", "Score"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}

	for i, r := range sr.Rankings {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), r.Rank)
		f.SetCellValue(sheet, cellRef(2, row), r.Team)
		f.SetCellValue(sheet, cellRef(3, row), r.Wins)
		f.SetCellValue(sheet, cellRef(4, row), r.Losses)
		f.SetCellValue(sheet, cellRef(5, row), r.Score)
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "D", 6)
	f.SetColWidth(sheet, "E", "E", 14)
	return nil
}

func writeTeamsSheet(f *excelize.File, sr *pipeline.SeasonRankings, logs map[string][]season.GameLine) error {
	sheet := "Teams"
	f.NewSheet(sheet)

	headers := []string{"Team", "Week", "Type", "Opponent", "Venue", "Result", "Score", "Margin"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}

	row := 2
	for _, r := range sr.Rankings {
		for _, line := range logs[r.Team] {
			venue := "Away"
			if line.Home {
				venue = "Home"
			}
			result := "L"
			if line.Win {
				result = "W"
			}
			f.SetCellValue(sheet, cellRef(1, row), r.Team)
			f.SetCellValue(sheet, cellRef(2, row), line.Week)
			f.SetCellValue(sheet, cellRef(3, row), line.SeasonType)
			f.SetCellValue(sheet, cellRef(4, row), line.Opponent)
			f.SetCellValue(sheet, cellRef(5, row), venue)
			f.SetCellValue(sheet, cellRef(6, row), result)
			f.SetCellValue(sheet, cellRef(7, row), fmt.Sprintf("%d-%d", line.PointsFor, line.PointsAgainst))
			f.SetCellValue(sheet, cellRef(8, row), line.Margin)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "C", 12)
	f.SetColWidth(sheet, "D", "D", 28)
	f.SetColWidth(sheet, "E", "H", 10)
	return nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
