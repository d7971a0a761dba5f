package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/kingshuk-14/sathiAI/pkg/llm"
)

type instrumentedUpstream struct {
	llm.Upstream
}

// InstrumentUpstream counts every call made through u by provider and
// outcome.
func InstrumentUpstream(u llm.Upstream) llm.Upstream {
	return instrumentedUpstream{Upstream: u}
}

func (u instrumentedUpstream) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	resp, err := u.Upstream.Chat(ctx, req)
	UpstreamRequests.WithLabelValues(u.Provider(), upstreamStatus(err)).Inc()
	return resp, err
}

func upstreamStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var relayErr *llm.RelayError
	if errors.As(err, &relayErr) {
		return strconv.Itoa(relayErr.StatusCode)
	}
	return "error"
}
