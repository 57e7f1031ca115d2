package qr

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/certichain/certichain/internal/logger"
)

// Result is the single accepted outcome of one scan session.
type Result struct {
	SessionID string
	Text      string
}

// Scanner drives one scan session over a frame source: frames are decoded
// until the first QR code is found, then scanning stops. A frame without a
// readable code means keep scanning; only source failures end the session
// early. The source is released on every exit path, including cancellation.
//
// A Scanner is single-use: one session, at most one result.
type Scanner struct {
	src     FrameSource
	log     *logger.Logger
	id      string
	started atomic.Bool
}

func NewScanner(src FrameSource, log *logger.Logger) *Scanner {
	return &Scanner{
		src: src,
		log: log,
		id:  uuid.NewString(),
	}
}

// SessionID identifies this scan session in logs and history entries.
func (s *Scanner) SessionID() string {
	return s.id
}

// Scan blocks until a QR code is detected, the source fails, or ctx is
// canceled. Cancel the context to stop an in-flight scan.
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	if !s.started.CompareAndSwap(false, true) {
		return Result{}, ErrSourceExhausted
	}
	defer func() {
		if err := s.src.Close(); err != nil {
			s.log.Err(err).Str("scan_session", s.id).Msg("frame source close failed")
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		frame, err := s.src.Next(ctx)
		if err != nil {
			return Result{}, err
		}

		text, err := DecodeImage(frame)
		if err != nil {
			if errors.Is(err, ErrNoCode) {
				continue
			}
			s.log.Debug().Err(err).Str("scan_session", s.id).Msg("undecodable frame, continuing")
			continue
		}

		s.log.Debug().Str("scan_session", s.id).Msg("qr code detected, scan stopped")
		return Result{SessionID: s.id, Text: text}, nil
	}
}

// Stop ends the session by releasing the source; a blocked Next observes
// the close and returns. Safe to call whether or not Scan is running.
func (s *Scanner) Stop() {
	if err := s.src.Close(); err != nil {
		s.log.Err(err).Str("scan_session", s.id).Msg("frame source close failed")
	}
}
