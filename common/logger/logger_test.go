package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"deepti.app/relay/common/logger"
)

var _ = Describe("LogFields", func() {
	It("returns empty fields for a bare context", func() {
		Expect(logger.GetLogFields(context.Background())).To(Equal(logger.LogFields{}))
	})

	It("merges newer values over older ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			RequestID: logger.Ptr(int64(7)),
			Component: "relay.http",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			HistoryLen: logger.Ptr(3),
			Component:  "relay.service",
		})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.RequestID).To(Equal(int64(7)))
		Expect(*fields.HistoryLen).To(Equal(3))
		Expect(fields.Component).To(Equal("relay.service"))
	})
})

var _ = Describe("TraceHandler", func() {
	It("adds context fields to every record", func() {
		var buf bytes.Buffer
		log := slog.New(logger.NewTraceHandler(slog.NewTextHandler(&buf, nil)))
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			RequestID: logger.Ptr(int64(42)),
			Provider:  logger.Ptr("gpt-4o-mini"),
			Component: "relay.service",
		})

		log.InfoContext(ctx, "relay reply sent")

		out := buf.String()
		Expect(out).To(ContainSubstring("request_id=42"))
		Expect(out).To(ContainSubstring("provider_model=gpt-4o-mini"))
		Expect(out).To(ContainSubstring("component=relay.service"))
		Expect(out).NotTo(ContainSubstring("trace_id"))
	})
})

var _ = Describe("Truncate", func() {
	DescribeTable("cuts on rune boundaries",
		func(input string, maxLen int, expected string) {
			Expect(logger.Truncate(input, maxLen)).To(Equal(expected))
		},
		Entry("short string unchanged", "hello", 10, "hello"),
		Entry("exact length unchanged", "hello", 5, "hello"),
		Entry("ascii truncated", "hello world", 5, "hello..."),
		Entry("telugu truncated", "నమస్తే దీప్తి", 3, string([]rune("నమస్తే దీప్తి")[:3])+"..."),
	)

	It("never splits a multi-byte rune", func() {
		out := logger.Truncate(strings.Repeat("తె", 20), 5)
		Expect([]rune(strings.TrimSuffix(out, "..."))).To(HaveLen(5))
	})
})
