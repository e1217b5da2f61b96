package socketio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/extmod/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFromObject(t *testing.T) {
	// --- Arrange ---
	h := testutil.NewHarness(t)
	v := h.Eval(t, `({
		url: "ws://localhost:3000/socket.io/",
		namespace: "/chat",
		emit_event: "ping",
		emit_data: { n: "1" },
		on_event: "pong",
		timeout: "2s",
		insecure_skip_verify: true
	})`)

	// --- Act ---
	got := requestFromObject(v.ToObject(h.Context.Runtime()))

	// --- Assert ---
	want := &Request{
		URL:                "ws://localhost:3000/socket.io/",
		Namespace:          "/chat",
		EmitEvent:          "ping",
		EmitData:           map[string]any{"n": "1"},
		OnEvent:            "pong",
		Timeout:            "2s",
		InsecureSkipVerify: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestModule_RequestValidation(t *testing.T) {
	h := testutil.NewHarness(t, &Module{}).Initialize(t)

	testCases := []struct {
		name   string
		script string
		want   string
	}{
		{name: "no options", script: `net.socketio.request()`, want: "expects an options object"},
		{name: "no event", script: `net.socketio.request({ url: "ws://localhost:1/" })`, want: "on_event is required"},
		{name: "relative url", script: `net.socketio.request({ url: "nowhere", on_event: "x" })`, want: "is not absolute"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := h.EvalErr(tc.script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
