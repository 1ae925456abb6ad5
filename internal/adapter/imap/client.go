// Package imap implements the mailbox collaborator over IMAP with TLS.
package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/javimendezpy/control-emails/internal/config"
	"github.com/javimendezpy/control-emails/internal/domain"
)

// Client is a connected, folder-selected IMAP session. It implements
// pipeline.MessageSource. Not safe for concurrent use; the run loop is
// sequential by design.
type Client struct {
	c      *imapclient.Client
	folder string
	logger *slog.Logger
}

// Dial connects over TLS, logs in, and selects the report folder. The
// configured IMAP timeout bounds the connection attempt.
func Dial(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	dialer := &net.Dialer{Timeout: cfg.IMAPTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", cfg.IMAPAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.IMAPAddr, err)
	}
	c := imapclient.New(conn, &imapclient.Options{})
	if err := c.Login(cfg.IMAPUsername, cfg.IMAPPassword).Wait(); err != nil {
		c.Close()
		return nil, fmt.Errorf("login %s: %w", cfg.IMAPUsername, err)
	}
	mbox, err := c.Select(cfg.IMAPFolder, nil).Wait()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("select folder %q: %w", cfg.IMAPFolder, err)
	}
	logger.Info("imap folder selected", "folder", cfg.IMAPFolder, "messages", mbox.NumMessages)
	return &Client{c: c, folder: cfg.IMAPFolder, logger: logger}, nil
}

// Window returns the messages whose internal receipt date falls within the
// closed [start, end] window. The server-side SINCE/BEFORE search has
// day granularity, so results are filtered precisely client-side.
func (c *Client) Window(ctx context.Context, start, end time.Time) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	criteria := &imap.SearchCriteria{
		Since:  start,
		Before: end.AddDate(0, 0, 1),
	}
	searchData, err := c.c.Search(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("search %s..%s: %w", start.Format(domain.DateLayout), end.Format(domain.DateLayout), err)
	}
	nums := searchData.AllSeqNums()
	if len(nums) == 0 {
		return nil, nil
	}

	seqSet := imap.SeqSetNum(nums...)
	fetchOptions := &imap.FetchOptions{Envelope: true, InternalDate: true}
	fetched, err := c.c.Fetch(seqSet, fetchOptions).Collect()
	if err != nil {
		return nil, fmt.Errorf("fetch %d messages: %w", len(nums), err)
	}

	messages := toMessages(fetched, start, end)
	c.logger.Debug("window fetched", "folder", c.folder, "matched", len(messages), "searched", len(nums))
	return messages, nil
}

// toMessages maps fetched envelopes onto domain messages, keeping only those
// whose internal date lies within the closed [start, end] window. Messages
// without an envelope are skipped.
func toMessages(fetched []*imapclient.FetchMessageBuffer, start, end time.Time) []domain.Message {
	messages := make([]domain.Message, 0, len(fetched))
	for _, msg := range fetched {
		if msg.Envelope == nil {
			continue
		}
		receivedAt := msg.InternalDate
		if receivedAt.Before(start) || receivedAt.After(end) {
			continue
		}
		messages = append(messages, domain.Message{
			Sender:         firstAddr(msg.Envelope.Sender),
			ResolvedSender: firstAddr(msg.Envelope.From),
			Subject:        msg.Envelope.Subject,
			ReceivedAt:     receivedAt,
		})
	}
	return messages
}

// Close logs out and drops the connection.
func (c *Client) Close() error {
	if err := c.c.Logout().Wait(); err != nil {
		return c.c.Close()
	}
	return c.c.Close()
}

func firstAddr(addrs []imap.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	return addrs[0].Addr()
}
