package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    string
		ok      bool
	}{
		{name: "plain string", content: TextContent(`{"overallScore":80}`), want: `{"overallScore":80}`, ok: true},
		{name: "empty string", content: TextContent(""), want: "", ok: true},
		{name: "first text part", content: PartsContent{TextPart("first"), TextPart("second")}, want: "first", ok: true},
		{name: "skips parts without text", content: PartsContent{{}, TextPart("answer")}, want: "answer", ok: true},
		{name: "no text parts", content: PartsContent{{}, {}}, ok: false},
		{name: "nil content", content: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeContent(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAIResponseText(t *testing.T) {
	var nilResp *AIResponse
	_, ok := nilResp.Text()
	assert.False(t, ok)

	resp := &AIResponse{Message: Message{Content: TextContent("  hi \n")}}
	text, ok := resp.Text()
	assert.True(t, ok)
	assert.Equal(t, "hi", text)
}
