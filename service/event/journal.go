// Package event persists approval lifecycle events as JSON documents so
// operators can audit decisions after the fact. The journal consumes the
// approval service's queue; storage is any afs-resolvable location (local
// path, file://, s3://, gs://).
package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/agentry/riskgate/service/approval"
	"github.com/agentry/riskgate/service/messaging"
)

// Journal writes one document per event under
// baseURL/<topic>/<approvalID>-<unixnano>.json.
type Journal struct {
	fs      afs.Service
	baseURL string
}

// NewJournal creates a journal rooted at baseURL.
func NewJournal(fs afs.Service, baseURL string) *Journal {
	if fs == nil {
		fs = afs.New()
	}
	return &Journal{fs: fs, baseURL: baseURL}
}

// Record persists a single event.
func (j *Journal) Record(ctx context.Context, e *approval.Event) error {
	if e == nil {
		return fmt.Errorf("event was nil")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s event for %v: %w", e.Topic, e.ApprovalID, err)
	}
	URL := path.Join(j.baseURL, e.Topic, fmt.Sprintf("%s-%d.json", e.ApprovalID, e.At.UnixNano()))
	if err = j.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to journal %s event for %v: %w", e.Topic, e.ApprovalID, err)
	}
	return nil
}

// Run consumes queue until ctx is cancelled, journaling every event. A
// failed write nacks the message so the queue can redeliver it.
func (j *Journal) Run(ctx context.Context, queue messaging.Queue[approval.Event]) {
	for {
		message, err := queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("event: failed to consume approval event: %v", err)
			continue
		}
		if err = j.Record(ctx, message.T()); err != nil {
			log.Printf("event: %v", err)
			_ = message.Nack(err)
			continue
		}
		_ = message.Ack()
	}
}
