package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hrdigest/internal/digest"
)

// 每次运行落一份 CSV + JSON 快照，便于人工核对与 Excel 查看。
// 快照是外部输出，不参与核心流水线；未配置目录时整个 sink 不启用。

type Snapshot struct {
	Dir string
}

var csvHeader = []string{"title", "url", "source", "timestamp", "keywords", "snippet"}

// Write 写出报告快照，返回两个文件路径
func (s *Snapshot) Write(rep *digest.Report) (csvPath, jsonPath string, err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", "", err
	}
	stamp := rep.GeneratedAt.Format("20060102_150405")
	csvPath = filepath.Join(s.Dir, fmt.Sprintf("digest_%s.csv", stamp))
	jsonPath = filepath.Join(s.Dir, fmt.Sprintf("digest_%s.json", stamp))

	if err := s.writeCSV(csvPath, rep.Items); err != nil {
		return "", "", err
	}
	if err := s.writeJSON(jsonPath, rep); err != nil {
		return "", "", err
	}
	return csvPath, jsonPath, nil
}

func (s *Snapshot) writeCSV(path string, items []digest.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// UTF-8 BOM，不带的话 Excel 打开中文是乱码
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		ts := ""
		if it.Timestamp != nil {
			ts = it.Timestamp.Format("2006-01-02 15:04")
		}
		row := []string{it.Title, it.CanonicalURL, it.Source, ts, strings.Join(it.Keywords, ","), it.Snippet}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Snapshot) writeJSON(path string, rep *digest.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
