package dingtalk

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hrdigest/internal/digest"
)

// 钉钉机器人 markdown 推送。加签规则：timestamp+"\n"+secret 做 HMAC-SHA256，
// base64 后 URL 转义，拼到 webhook 上。单条 markdown 有长度上限，超长时
// 按字符切片分多条发送，标题带（i/n）后缀。

// 钉钉上限约 4000 字符，留出冗余
const defaultChunkSize = 3500

type Notifier struct {
	Webhook string
	Secret  string
	// 机器人设置了关键词过滤时，保证标题必含该词
	Keyword   string
	ChunkSize int
	DryRun    bool
	Client    *http.Client

	// 测试注入
	now func() time.Time
}

func New(webhook, secret string) *Notifier {
	return &Notifier{
		Webhook:   webhook,
		Secret:    secret,
		ChunkSize: defaultChunkSize,
		Client:    &http.Client{Timeout: 20 * time.Second},
		now:       time.Now,
	}
}

type markdownPayload struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"markdown"`
}

type robotResp struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Send 推送一段 markdown，必要时分片。未配置 webhook 或 DryRun 时跳过不报错。
func (n *Notifier) Send(title, text string) error {
	if n.Webhook == "" {
		log.Println("dingtalk: no webhook configured, skip push")
		return nil
	}
	if n.DryRun {
		log.Println("dingtalk: dry run, skip push")
		return nil
	}

	title = n.gateTitle(title, text)
	size := n.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	chunks := digest.Split(text, size)
	for i, chunk := range chunks {
		if err := n.post(chunkTitle(title, i+1, len(chunks)), chunk); err != nil {
			return fmt.Errorf("dingtalk: chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

func (n *Notifier) post(title, text string) error {
	payload := markdownPayload{MsgType: "markdown"}
	payload.Markdown.Title = title
	payload.Markdown.Text = text
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := signWebhook(n.Webhook, n.Secret, n.nowMillis())
	resp, err := n.Client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	var rr robotResp
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return err
	}
	if rr.ErrCode != 0 {
		return fmt.Errorf("errcode %d: %s", rr.ErrCode, rr.ErrMsg)
	}
	return nil
}

func (n *Notifier) nowMillis() int64 {
	now := time.Now
	if n.now != nil {
		now = n.now
	}
	return now().UnixMilli()
}

// gateTitle 机器人开了关键词过滤且标题正文都没带时，把关键词前置到标题
func (n *Notifier) gateTitle(title, text string) string {
	if n.Keyword == "" {
		return title
	}
	if strings.Contains(title, n.Keyword) || strings.Contains(text, n.Keyword) {
		return title
	}
	return n.Keyword + " | " + title
}

// signWebhook secret 为空表示机器人未开加签，原样返回
func signWebhook(webhook, secret string, tsMillis int64) string {
	if secret == "" {
		return webhook
	}
	ts := strconv.FormatInt(tsMillis, 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "\n" + secret))
	sign := url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	sep := "?"
	if strings.ContainsRune(webhook, '?') {
		sep = "&"
	}
	return webhook + sep + "timestamp=" + ts + "&sign=" + sign
}

// chunkTitle 多片时标题带（i/n）后缀，单片不动
func chunkTitle(title string, i, n int) string {
	if n <= 1 {
		return title
	}
	return fmt.Sprintf("%s（%d/%d）", title, i, n)
}
