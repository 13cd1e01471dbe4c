package bot

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/prastianhdd/task-manager/core/config"
)

const testSchema = `
CREATE TABLE mata_kuliah (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nama TEXT NOT NULL,
	hari TEXT NOT NULL,
	jam TEXT NOT NULL,
	ruangan TEXT NOT NULL
);
CREATE TABLE tugas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	matkul_nama TEXT NOT NULL,
	deskripsi TEXT NOT NULL,
	deadline TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
);
`

const testAdminID int64 = 99

func newTestApp(t *testing.T) *App {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	cfg := &Config{
		Core: coreconfig.Config{
			Telegram: coreconfig.TelegramConfig{
				Token:   "test-token",
				AdminID: testAdminID,
			},
		},
	}
	return New(cfg, db)
}

type sentMessage struct {
	text string
	opts []interface{}
}

// fakeContext implements the parts of tele.Context the handlers touch.
// Anything else panics through the embedded nil interface, which would
// signal a handler reaching beyond what these tests model.
type fakeContext struct {
	tele.Context

	sender *tele.User
	chat   *tele.Chat
	text   string
	cb     *tele.Callback
	msg    *tele.Message

	kv        map[string]interface{}
	sent      []sentMessage
	edited    []sentMessage
	responses []*tele.CallbackResponse
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID, FirstName: "Budi"},
		chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		text:   text,
		kv:     make(map[string]interface{}),
	}
}

func newFakeCallback(userID int64, unique, payload string) *fakeContext {
	c := newFakeContext(userID, "")
	c.msg = &tele.Message{ID: 7, Chat: c.chat, Text: "📚 Kalkulus"}
	c.cb = &tele.Callback{Unique: unique, Data: payload, Message: c.msg, Sender: c.sender}
	return c
}

func (f *fakeContext) Update() tele.Update       { return tele.Update{ID: 1} }
func (f *fakeContext) Sender() *tele.User        { return f.sender }
func (f *fakeContext) Chat() *tele.Chat          { return f.chat }
func (f *fakeContext) Text() string              { return f.text }
func (f *fakeContext) Callback() *tele.Callback  { return f.cb }
func (f *fakeContext) Message() *tele.Message    { return f.msg }
func (f *fakeContext) Set(k string, v interface{}) { f.kv[k] = v }
func (f *fakeContext) Get(k string) interface{}  { return f.kv[k] }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	text, _ := what.(string)
	f.sent = append(f.sent, sentMessage{text: text, opts: opts})
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	text, _ := what.(string)
	f.edited = append(f.edited, sentMessage{text: text, opts: opts})
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) > 0 {
		f.responses = append(f.responses, resp[0])
	} else {
		f.responses = append(f.responses, &tele.CallbackResponse{})
	}
	return nil
}

func (f *fakeContext) lastSent() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].text
}
