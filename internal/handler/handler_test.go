package handler

import (
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gojobot/config"
	"gojobot/internal/i18n"
	"gojobot/internal/repository"
	"gojobot/internal/stats"
)

type fakeRecognizer struct {
	codes []string
}

func (f fakeRecognizer) Recognize(img image.Image) []string {
	return f.codes
}

func newTestHandler(codes []string, admins map[int64]struct{}) *Handler {
	return NewHandler(
		&config.Config{},
		zap.NewNop(),
		repository.NewMemorySessionRepository(),
		admins,
		stats.NewScanCounter(),
		fakeRecognizer{codes: codes},
		nil,
	)
}

func TestLiteralCodeIncrementsCounterAndBuildsLinks(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	for i, code := range []string{"12345678", "0123456789012345", "012345678905"} {
		reply := h.routeText(ctx, sess, code)

		assert.Contains(t, reply, "https://www.homedepot.com/s/"+code)
		assert.Contains(t, reply, "https://www.google.com/search?q="+code)
		assert.Equal(t, int64(i+1), h.counter.Total())
	}
}

func TestUnrecognizedTextLeavesCounterUnchanged(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	for _, text := range []string{
		"hello",
		"1234567",           // too short
		"12345678901234567", // too long
		"12a45678",
		"1234 5678",
	} {
		reply := h.routeText(ctx, sess, text)

		assert.Contains(t, reply, "barcode number", "input %q", text)
		assert.Equal(t, int64(0), h.counter.Total(), "input %q", text)
	}
}

func TestIsCode(t *testing.T) {
	assert.True(t, isCode("12345678"))
	assert.True(t, isCode("1234567890123456"))
	assert.False(t, isCode("1234567"))
	assert.False(t, isCode("12345678901234567"))
	assert.False(t, isCode("1234567a"))
	assert.False(t, isCode(""))
}

func TestStoreCommandRejectsNonDigits(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	reply := h.routeText(ctx, sess, "/store 99a9")
	assert.Contains(t, reply, "only the store number")

	stored, err := h.sessions.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, stored.PreferredStore)
}

func TestStoreCommandSetsStoreAndAnnotatesReplies(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	reply := h.routeText(ctx, sess, "/store 1553")
	assert.Contains(t, reply, "#1553")

	// later messages from the same user see the saved store
	sess = h.session(ctx, 1)
	assert.Equal(t, "1553", sess.PreferredStore)

	reply = h.routeText(ctx, sess, "012345678905")
	assert.Contains(t, reply, "#1553")
}

func TestStoreCommandUsesFirstTokenOnly(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	h.routeText(ctx, sess, "/store 1553 9999")

	stored, err := h.sessions.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "1553", stored.PreferredStore)
}

func TestStoreCommandWithoutArgumentShowsCurrent(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	assert.Contains(t, h.routeText(ctx, sess, "/store"), "haven't set a preferred store")

	h.routeText(ctx, sess, "/store 1553")
	sess = h.session(ctx, 1)
	assert.Contains(t, h.routeText(ctx, sess, "/store"), "#1553")
}

func TestLangCommandSwitchesToEnglishOnly(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	h.routeText(ctx, sess, "/lang en")

	sess = h.session(ctx, 1)
	require.Equal(t, i18n.LangEN, sess.Language)

	// subsequent replies carry only the English block
	reply := h.routeText(ctx, sess, "012345678905")
	assert.Contains(t, reply, "Code detected")
	assert.NotContains(t, reply, "ባርኮድ")

	reply = h.routeText(ctx, sess, "not a code")
	assert.NotContains(t, reply, "እባክዎን")
}

func TestLangCommandWithoutArgumentShowsOptions(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	reply := h.routeText(ctx, sess, "/lang")
	assert.Contains(t, reply, "/lang en")
	assert.Contains(t, reply, "/lang am")
	assert.Contains(t, reply, "/lang bi")

	reply = h.routeText(ctx, sess, "/lang klingon")
	assert.Contains(t, reply, "Current language mode")
}

func TestStatsCommandAdminGating(t *testing.T) {
	admins := map[int64]struct{}{7: {}}
	h := newTestHandler(nil, admins)
	ctx := context.Background()

	h.counter.Add(5)

	outsider := h.session(ctx, 1)
	assert.Contains(t, h.routeText(ctx, outsider, "/stats"), "admins only")

	admin := h.session(ctx, 7)
	assert.Contains(t, h.routeText(ctx, admin, "/stats"), fmt.Sprintf("*%d*", 5))
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	assert.Empty(t, h.routeText(ctx, sess, "/frobnicate"))
	assert.Equal(t, int64(0), h.counter.Total())
}

func TestCommandWithBotSuffix(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()
	sess := h.session(ctx, 1)

	reply := h.routeText(ctx, sess, "/help@GojoClearanceBot")
	assert.Contains(t, reply, "How to use")
}

func TestSessionCreatedLazilyWithDefaults(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()

	sess := h.session(ctx, 99)
	assert.Equal(t, i18n.Default, sess.Language)
	assert.Empty(t, sess.PreferredStore)

	// and it was persisted
	stored, err := h.sessions.Get(ctx, 99)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	h := newTestHandler(nil, nil)
	ctx := context.Background()

	first := h.session(ctx, 1)
	h.routeText(ctx, first, "/lang en")
	h.routeText(ctx, first, "/store 1553")

	second := h.session(ctx, 2)
	assert.Equal(t, i18n.Default, second.Language)
	assert.Empty(t, second.PreferredStore)

	reply := h.routeText(ctx, second, "012345678905")
	assert.NotContains(t, reply, "#1553")
	assert.True(t, strings.Contains(reply, "ባርኮድ"), "default session stays bilingual")
}
