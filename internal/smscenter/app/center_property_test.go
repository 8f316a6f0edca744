package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCenterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: held messages are flushed exactly once, in send order
	properties.Property("held messages flush in FIFO order exactly once", prop.ForAll(
		func(texts []string) bool {
			ctx := context.Background()
			transport := &recordingTransport{}
			c := NewCenter(transport, discardLogger())

			if err := c.Register(ctx, "sender", "+3611"); err != nil {
				return false
			}
			c.Subscribe(ctx, "sender")
			if err := c.Register(ctx, "receiver", "+3622"); err != nil {
				return false
			}

			for _, text := range texts {
				if err := c.SendMessage(ctx, "sender", "receiver", text); err != nil {
					return false
				}
			}
			if len(transport.messages()) != 0 {
				return false
			}

			c.Subscribe(ctx, "receiver")
			c.Subscribe(ctx, "receiver")

			sent := transport.messages()
			if len(sent) != len(texts) {
				return false
			}
			for i, text := range texts {
				if sent[i].Text != text || sent[i].From != "+3611" || sent[i].To != "+3622" {
					return false
				}
			}
			return len(c.HeldFor("+3622")) == 0
		},
		gen.SliceOf(gen.AlphaString()),
	))

	// Property: a reachable number receives a group message at most once,
	// and exactly once when any pattern is a prefix of it
	properties.Property("group send delivers once per matching reachable number", prop.ForAll(
		func(suffixes []string, patterns []string) bool {
			ctx := context.Background()
			transport := &recordingTransport{}
			c := NewCenter(transport, discardLogger())

			raw := make([]string, 0, len(patterns))
			for _, p := range patterns {
				raw = append(raw, "+"+p+"*")
			}
			c.CreateGroup(ctx, "g", raw)

			numbers := make(map[domain.PhoneNumber]bool)
			for i, s := range suffixes {
				phone := domain.PhoneNumber("+" + s)
				id := domain.Identifier(fmt.Sprintf("number%d", i))
				if err := c.Register(ctx, id, phone); err != nil {
					return false
				}
				c.Subscribe(ctx, id)
				numbers[phone] = false
			}
			for phone := range numbers {
				for _, p := range patterns {
					if strings.HasPrefix(string(phone), "+"+p) {
						numbers[phone] = true
						break
					}
				}
			}

			c.SendGroupMessage(ctx, "nobody", "g", "m")

			received := make(map[domain.PhoneNumber]int)
			for _, sms := range transport.messages() {
				received[sms.To]++
			}
			for phone, shouldMatch := range numbers {
				want := 0
				if shouldMatch {
					want = 1
				}
				if received[phone] != want {
					return false
				}
			}
			return len(received) <= len(numbers)
		},
		gen.SliceOf(gen.NumString()),
		gen.SliceOfN(3, gen.NumString()),
	))

	// Property: broadcast reaches every reachable number exactly once
	properties.Property("broadcast reaches every reachable number once", prop.ForAll(
		func(count int) bool {
			ctx := context.Background()
			transport := &recordingTransport{}
			c := NewCenter(transport, discardLogger())

			for i := 0; i < count; i++ {
				id := domain.Identifier(fmt.Sprintf("number%d", i))
				if err := c.Register(ctx, id, domain.PhoneNumber(fmt.Sprintf("+36%d", i))); err != nil {
					return false
				}
				if i%2 == 0 {
					c.Subscribe(ctx, id)
				}
			}

			c.SendBroadcast(ctx, "number0", "hello")

			seen := make(map[domain.PhoneNumber]bool)
			for _, sms := range transport.messages() {
				if seen[sms.To] || !c.IsReachable(sms.To) {
					return false
				}
				seen[sms.To] = true
			}
			return len(seen) == (count+1)/2
		},
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}
