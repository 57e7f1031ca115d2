// Package certops implements the four user-facing certificate operations —
// verify, issue, revoke and the (stub) transfer — plus the owner's roster
// mutations. Each operation is one contract call wrapped in validation and
// the shared failure taxonomy; the contract itself is the enforcement point
// for every permission and uniqueness rule.
package certops

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/certichain/certichain/internal/chain"
	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/models"
)

// Reader is the anonymous lookup surface; usable without a wallet.
type Reader interface {
	GetCertificate(ctx context.Context, certID string) (models.Certificate, error)
}

// ContractWriter is the session-scoped write surface.
type ContractWriter interface {
	IssueCertificate(ctx context.Context, certID, productName, mfgName string, mfgDate int64) (models.TxOutcome, error)
	RevokeCertificate(ctx context.Context, certID string) (models.TxOutcome, error)
	AddAdmin(ctx context.Context, newAdmin common.Address) (models.TxOutcome, error)
	RemoveAdmin(ctx context.Context, admin common.Address) (models.TxOutcome, error)
}

// Encoder renders a QR image for a freshly issued certificate payload.
type Encoder interface {
	Encode(p models.QRPayload) ([]byte, error)
	SaveFile(p models.QRPayload) (string, error)
}

// Recorder appends to the local activity log. Failures to record are logged
// and never fail the operation.
type Recorder interface {
	Append(ctx context.Context, e models.HistoryEntry) error
}

// Service executes certificate operations. The write handle is owned by the
// wallet session; SetWriter/ClearWriter follow the session lifecycle
// wholesale.
type Service struct {
	reader   Reader
	encoder  Encoder
	recorder Recorder
	log      *logger.Logger

	writer  atomic.Pointer[writerBox]
	issuing atomic.Bool
}

// writerBox wraps the interface so an atomic.Pointer can hold it.
type writerBox struct {
	w ContractWriter
}

func NewService(reader Reader, encoder Encoder, recorder Recorder, log *logger.Logger) *Service {
	return &Service{
		reader:   reader,
		encoder:  encoder,
		recorder: recorder,
		log:      log,
	}
}

// SetWriter attaches the session's write handle after a successful connect.
func (s *Service) SetWriter(w ContractWriter) {
	s.writer.Store(&writerBox{w: w})
}

// ClearWriter detaches the write handle on disconnect or session
// invalidation.
func (s *Service) ClearWriter() {
	s.writer.Store(nil)
}

func (s *Service) currentWriter() (ContractWriter, error) {
	box := s.writer.Load()
	if box == nil || box.w == nil {
		return nil, &chain.Error{Kind: chain.KindEnvironment, Err: ErrNotConnected}
	}
	return box.w, nil
}

// VerifyStatus is the three-way outcome of a lookup.
type VerifyStatus int

const (
	StatusNotFound VerifyStatus = iota
	StatusValid
	StatusRevoked
)

func (v VerifyStatus) String() string {
	switch v {
	case StatusValid:
		return "VALID"
	case StatusRevoked:
		return "REVOKED"
	default:
		return "NOT FOUND"
	}
}

// VerifyResult combines the on-chain record with the QR-only metadata that
// arrived alongside the identifier, when any did. The two are independent,
// unsynchronized descriptions of the same certificate ID; nothing binds the
// payload to the chain record.
type VerifyResult struct {
	CertID      string
	Status      VerifyStatus
	Certificate models.Certificate
	DisplayName string
	Payload     *models.QRPayload
}

// ResolveIdentifier turns raw verify input into a certificate ID: a JSON
// payload carrying certId wins, anything else is treated as the ID itself.
func ResolveIdentifier(input string) (string, *models.QRPayload) {
	trimmed := strings.TrimSpace(input)
	if payload, ok := models.ParseQRPayload(trimmed); ok {
		return payload.CertID, &payload
	}
	return trimmed, nil
}

// Verify looks up a certificate by raw ID or scanned QR payload. It needs no
// wallet. Absent records (empty product name and zero date) report
// StatusNotFound rather than an error.
func (s *Service) Verify(ctx context.Context, identifier string) (VerifyResult, error) {
	certID, payload := ResolveIdentifier(identifier)
	if certID == "" {
		return VerifyResult{}, &chain.Error{Kind: chain.KindValidation, Err: ErrEmptyIdentifier}
	}

	cert, err := s.reader.GetCertificate(ctx, certID)
	if err != nil {
		return VerifyResult{}, chain.Classify(err)
	}

	result := VerifyResult{
		CertID:      certID,
		Certificate: cert,
		Payload:     payload,
	}

	switch {
	case !cert.Found():
		result.Status = StatusNotFound
	case cert.Valid:
		result.Status = StatusValid
	default:
		result.Status = StatusRevoked
	}

	// The on-chain productName usually holds the issuance compaction;
	// surface the human name when it does.
	result.DisplayName = cert.ProductName
	if compact, ok := models.ParseCompactProduct(cert.ProductName); ok {
		result.DisplayName = compact.Name
	}

	s.record(ctx, models.ActionVerify, certID, "", result.Status.String())
	return result, nil
}

// IssueFields is the issuance form input. Details and Notes are optional;
// everything else is required.
type IssueFields struct {
	ProductName    string
	MfgDate        string
	Location       string
	IntendedRegion string
	Details        string
	Notes          string
}

// IssueResult is everything produced by a confirmed issuance: the generated
// ID, the full QR payload, the rendered QR image and its saved location, and
// the transaction outcome.
type IssueResult struct {
	CertID  string
	Payload models.QRPayload
	QRImage []byte
	QRPath  string
	Outcome models.TxOutcome
}

// Issue validates the form, generates a certificate ID, submits the
// issuance and, after the receipt confirms, encodes the holder's QR image.
// Only certId plus the name/location/region compaction reach the chain; the
// remaining fields live solely in the QR payload.
//
// Overlapping calls are refused: a second Issue while one is in flight
// returns ErrIssueInFlight instead of double-submitting.
func (s *Service) Issue(ctx context.Context, f IssueFields) (IssueResult, error) {
	if !s.issuing.CompareAndSwap(false, true) {
		return IssueResult{}, &chain.Error{Kind: chain.KindValidation, Err: ErrIssueInFlight}
	}
	defer s.issuing.Store(false)

	f = trimIssueFields(f)
	if err := validateIssueFields(f); err != nil {
		return IssueResult{}, err
	}

	mfgUnix, err := parseMfgDate(f.MfgDate)
	if err != nil {
		return IssueResult{}, err
	}

	writer, err := s.currentWriter()
	if err != nil {
		return IssueResult{}, err
	}

	certID := GenerateCertID()
	compact, err := models.CompactProduct{
		Name:     f.ProductName,
		Location: f.Location,
		Region:   f.IntendedRegion,
	}.Compact()
	if err != nil {
		return IssueResult{}, chain.Classify(err)
	}

	s.log.Debug().Str("cert_id", certID).Str("product", f.ProductName).Msg("submitting issuance")

	outcome, err := writer.IssueCertificate(ctx, certID, compact, f.Location, mfgUnix)
	if err != nil {
		return IssueResult{}, chain.Classify(err)
	}

	payload := models.QRPayload{
		CertID:         certID,
		ProductName:    f.ProductName,
		Location:       f.Location,
		IntendedRegion: f.IntendedRegion,
		Details:        f.Details,
		Notes:          f.Notes,
		MfgDate:        f.MfgDate,
	}

	result := IssueResult{
		CertID:  certID,
		Payload: payload,
		Outcome: outcome,
	}

	if result.QRImage, err = s.encoder.Encode(payload); err != nil {
		return result, chain.Classify(err)
	}
	if result.QRPath, err = s.encoder.SaveFile(payload); err != nil {
		return result, chain.Classify(err)
	}

	s.record(ctx, models.ActionIssue, certID, outcome.TxHash, f.ProductName)
	return result, nil
}

// Revoke invalidates a certificate. No local existence check: the
// contract's revert is authoritative.
func (s *Service) Revoke(ctx context.Context, certID string) (models.TxOutcome, error) {
	certID = strings.TrimSpace(certID)
	if certID == "" {
		return models.TxOutcome{}, &chain.Error{Kind: chain.KindValidation, Err: ErrEmptyIdentifier}
	}

	writer, err := s.currentWriter()
	if err != nil {
		return models.TxOutcome{}, err
	}

	outcome, err := writer.RevokeCertificate(ctx, certID)
	if err != nil {
		return outcome, chain.Classify(err)
	}

	s.record(ctx, models.ActionRevoke, certID, outcome.TxHash, "")
	return outcome, nil
}

// TransferResult echoes the would-be transfer back to the user. The
// registry contract exposes no transfer method, so this operation is a
// declared stub pending a real on-chain specification.
type TransferResult struct {
	CertID    string
	Recipient common.Address
	Supported bool
	Message   string
}

// Transfer validates the recipient locally and reports the stub outcome.
// Nothing is submitted.
func (s *Service) Transfer(ctx context.Context, certID, recipient string) (TransferResult, error) {
	certID = strings.TrimSpace(certID)
	if certID == "" {
		return TransferResult{}, &chain.Error{Kind: chain.KindValidation, Err: ErrEmptyIdentifier}
	}
	recipient = strings.TrimSpace(recipient)
	if !common.IsHexAddress(recipient) {
		return TransferResult{}, &chain.Error{Kind: chain.KindValidation, Err: ErrInvalidAddress}
	}

	result := TransferResult{
		CertID:    certID,
		Recipient: common.HexToAddress(recipient),
		Supported: false,
		Message:   "On-chain transfer is not supported by the registry contract yet.",
	}

	s.record(ctx, models.ActionTransfer, certID, "", result.Recipient.Hex())
	return result, nil
}

// AddAdmin grants roster membership. Owner-only; enforced by the contract.
func (s *Service) AddAdmin(ctx context.Context, address string) (models.TxOutcome, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return models.TxOutcome{}, err
	}

	writer, err := s.currentWriter()
	if err != nil {
		return models.TxOutcome{}, err
	}

	outcome, err := writer.AddAdmin(ctx, addr)
	if err != nil {
		return outcome, chain.Classify(err)
	}
	return outcome, nil
}

// RemoveAdmin revokes roster membership. Owner-only; enforced by the
// contract.
func (s *Service) RemoveAdmin(ctx context.Context, address string) (models.TxOutcome, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return models.TxOutcome{}, err
	}

	writer, err := s.currentWriter()
	if err != nil {
		return models.TxOutcome{}, err
	}

	outcome, err := writer.RemoveAdmin(ctx, addr)
	if err != nil {
		return outcome, chain.Classify(err)
	}
	return outcome, nil
}

// RecordScan logs a completed scan session into the activity history.
func (s *Service) RecordScan(ctx context.Context, sessionID, decoded string) {
	certID, _ := ResolveIdentifier(decoded)
	s.record(ctx, models.ActionScan, certID, "", sessionID)
}

func (s *Service) record(ctx context.Context, action models.HistoryAction, certID, txHash, detail string) {
	if s.recorder == nil {
		return
	}
	entry := models.HistoryEntry{
		Action:    action,
		CertID:    certID,
		TxHash:    txHash,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.recorder.Append(ctx, entry); err != nil {
		s.log.Err(err).Str("action", string(action)).Msg("history append failed")
	}
}

func trimIssueFields(f IssueFields) IssueFields {
	f.ProductName = strings.TrimSpace(f.ProductName)
	f.MfgDate = strings.TrimSpace(f.MfgDate)
	f.Location = strings.TrimSpace(f.Location)
	f.IntendedRegion = strings.TrimSpace(f.IntendedRegion)
	f.Details = strings.TrimSpace(f.Details)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

func validateIssueFields(f IssueFields) error {
	switch {
	case f.ProductName == "":
		return missingField("product name")
	case f.MfgDate == "":
		return missingField("manufacturing date")
	case f.Location == "":
		return missingField("location")
	case f.IntendedRegion == "":
		return missingField("intended region")
	}
	return nil
}

// parseMfgDate accepts a calendar date (2006-01-02) or an RFC 3339 stamp and
// returns UNIX seconds. Anything that does not land on a positive timestamp
// is rejected before submission.
func parseMfgDate(input string) (int64, error) {
	var parsed time.Time
	var err error
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		parsed, err = time.Parse(layout, input)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0, badField("manufacturing date", ErrInvalidDate)
	}

	unix := parsed.UTC().Unix()
	if unix <= 0 {
		return 0, badField("manufacturing date", ErrInvalidDate)
	}
	return unix, nil
}

func parseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, &chain.Error{Kind: chain.KindValidation, Err: ErrInvalidAddress}
	}
	return common.HexToAddress(input), nil
}
