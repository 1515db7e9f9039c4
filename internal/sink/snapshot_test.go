package sink

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"hrdigest/internal/digest"
	"hrdigest/internal/window"
)

func sampleReport() *digest.Report {
	cst := time.FixedZone("CST", 8*3600)
	ts := time.Date(2025, 9, 15, 8, 30, 0, 0, cst)
	return &digest.Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, 9, 16, 8, 0, 0, 0, cst),
		Window: window.Window{
			Start: time.Date(2025, 9, 15, 0, 0, 0, 0, cst),
			End:   time.Date(2025, 9, 15, 23, 59, 59, 0, cst),
			Label: "昨日专辑",
		},
		Items: []digest.Item{
			{
				Title:        "人力资源市场整治",
				CanonicalURL: "https://www.mohrss.gov.cn/t1.html",
				Timestamp:    &ts,
				Source:       "人社部·人社新闻",
				Snippet:      "摘要",
				Keywords:     []string{"人力资源"},
			},
			{Title: "无日期条目", CanonicalURL: "https://x/2", Source: "s2"},
		},
		Markdown:  "**标题：早安资讯｜昨日专辑**",
		PerSource: map[string]int{"人社部·人社新闻": 1, "s2": 1},
	}
}

func TestSnapshotWrite(t *testing.T) {
	s := &Snapshot{Dir: t.TempDir()}
	csvPath, jsonPath, err := s.Write(sampleReport())
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}

	bs, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !bytes.HasPrefix(bs, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("csv must start with a UTF-8 BOM")
	}
	rows, err := csv.NewReader(bytes.NewReader(bs[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 items", len(rows))
	}
	if rows[0][0] != "title" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][3] != "2025-09-15 08:30" {
		t.Fatalf("timestamp cell = %q", rows[1][3])
	}
	if rows[2][3] != "" {
		t.Fatalf("dateless item should leave the cell empty, got %q", rows[2][3])
	}

	js, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var back digest.Report
	if err := json.Unmarshal(js, &back); err != nil {
		t.Fatalf("json not parseable: %v", err)
	}
	if back.RunID != "run-1" || len(back.Items) != 2 {
		t.Fatalf("roundtrip report wrong: %+v", back)
	}
	if back.Items[1].Timestamp != nil {
		t.Fatal("dateless item must stay dateless through json")
	}
	if !strings.Contains(string(js), "https://www.mohrss.gov.cn/t1.html") {
		t.Fatal("urls should stay readable in json")
	}

	if !strings.Contains(csvPath, "digest_20250916_080000.csv") {
		t.Fatalf("csv path not stamped from GeneratedAt: %q", csvPath)
	}
}
