// Package parser is the public driver: it opens a flight-log byte slice,
// exposes its version and human-readable Details, builds the keychain
// request pass 1 needs, and decodes the record/frame streams pass 2
// produces once keychains are resolved (or immediately, for logs old enough
// not to need them).
package parser

import (
	"bytes"
	"io"

	"github.com/kevincowleys/dji-log-parser/internal/dlperrors"
	"github.com/kevincowleys/dji-log-parser/internal/frame"
	"github.com/kevincowleys/dji-log-parser/internal/keychain"
	"github.com/kevincowleys/dji-log-parser/internal/keychainapi"
	"github.com/kevincowleys/dji-log-parser/internal/layout"
	"github.com/kevincowleys/dji-log-parser/internal/record"
)

// Parser holds one opened flight-log file: its raw bytes, decoded Prefix,
// and decoded Details. Version and Details are read once at Open time;
// everything downstream of them (keychain request, records, frames) is
// computed on demand from the stored bytes.
type Parser struct {
	data    []byte
	prefix  layout.Prefix
	Version byte
	Details layout.Details
}

// Open parses a flight-log file's Prefix and Details/Auxiliary header,
// branching on version exactly as the container layout requires: versions
// below 13 carry Details directly at the detail offset; 13 and later wrap it
// in an XOR-obfuscated Auxiliary Info block, followed by an Auxiliary
// Version block. When the Prefix doesn't carry an explicit records offset
// (an encoder quirk some version>=13 files have), the real offset is
// recovered by measuring past the second Auxiliary block.
func Open(data []byte) (*Parser, error) {
	prefix, err := layout.ParsePrefix(bytes.NewReader(padTo(data, layout.PrefixSize)))
	if err != nil {
		return nil, dlperrors.NewParseError(0, "prefix", err)
	}

	detailOffset := int(prefix.ResolvedDetailOffset())
	rest := data
	if detailOffset < len(data) {
		rest = data[detailOffset:]
	} else {
		rest = nil
	}
	section := bytes.NewReader(padTo(rest, 400))

	var details layout.Details
	if prefix.Version < 13 {
		details = layout.ParseDetails(padTo(rest, 400), 0, prefix.Version)
	} else {
		info, err := layout.ParseAuxiliary(section)
		if err != nil {
			return nil, dlperrors.NewParseError(int64(detailOffset), "auxiliary info", err)
		}
		if info.Kind != layout.AuxiliaryKindInfo {
			return nil, &dlperrors.MissingAuxiliaryDataError{Kind: "Info"}
		}
		details = layout.ParseDetails(info.Info.InfoData, 0, prefix.Version)

		if prefix.RecordsOffset() == 0 {
			if _, err := layout.ParseAuxiliary(section); err != nil {
				return nil, dlperrors.NewParseError(int64(detailOffset), "auxiliary version", err)
			}
			pos, _ := section.Seek(0, io.SeekCurrent)
			prefix.RecoverDetailOffset(uint64(detailOffset) + uint64(pos))
		}
	}

	return &Parser{data: data, prefix: prefix, Version: prefix.Version, Details: details}, nil
}

// padTo returns b zero-extended to at least n bytes (a copy; b is never
// mutated), matching the container format's tolerance for short/legacy
// buffers whose trailing fields are implicitly zero.
func padTo(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// KeychainsRequest builds the HTTP request body pass 1 needs: it streams
// every record with an empty keychain (nothing in a log's raw bytes needs
// decrypting to find KeyStorage ciphertexts) and groups them at each
// Recover boundary marker. Versions below 13 carry no encrypted records at
// all, so this returns an empty Request.
func (p *Parser) KeychainsRequest() (keychain.Request, error) {
	return p.KeychainsRequestWithCustomParams(nil, nil)
}

// KeychainsRequestWithCustomParams is KeychainsRequest with the version and
// department overridable, instead of read from the file's second Auxiliary
// block. A nil department falls back to the file's own, and an unrecognized
// file department falls back to DJIFly, mirroring the original's defaulting
// rule.
func (p *Parser) KeychainsRequestWithCustomParams(department *layout.Department, version *uint16) (keychain.Request, error) {
	if p.Version < 13 {
		return keychain.Request{}, nil
	}

	cursor := bytes.NewReader(p.data)
	if _, err := cursor.Seek(int64(p.prefix.ResolvedDetailOffset()), io.SeekStart); err != nil {
		return keychain.Request{}, dlperrors.NewParseError(0, "seek to auxiliary", err)
	}

	if _, err := layout.ParseAuxiliary(cursor); err != nil {
		return keychain.Request{}, dlperrors.NewParseError(0, "auxiliary info", err)
	}
	versionAux, err := layout.ParseAuxiliary(cursor)
	if err != nil {
		return keychain.Request{}, dlperrors.NewParseError(0, "auxiliary version", err)
	}
	if versionAux.Kind != layout.AuxiliaryKindVersion {
		return keychain.Request{}, &dlperrors.MissingAuxiliaryDataError{Kind: "Version"}
	}

	reqVersion := versionAux.Version.Version
	if version != nil {
		reqVersion = *version
	}
	reqDepartment := versionAux.Version.Department.Raw()
	switch {
	case department != nil:
		reqDepartment = department.Raw()
	case versionAux.Version.Department.String() == "Unknown":
		reqDepartment = keychain.DefaultDepartment
	}

	builder := keychain.NewBuilder(reqVersion, reqDepartment)

	end := int64(p.prefix.RecordsEndOffset(uint64(len(p.data))))
	if _, err := cursor.Seek(int64(p.prefix.RecordsOffset()), io.SeekStart); err != nil {
		return keychain.Request{}, dlperrors.NewParseError(0, "seek to records", err)
	}

	reader := record.NewReader(cursor, p.Version, p.Details.ProductType, keychain.New(), end)
	for {
		rec, err := reader.Next()
		if err != nil {
			break
		}
		switch rec.Kind {
		case record.KindKeyStorage:
			builder.PushCiphertext(rec.KeyStorage.FeaturePoint, rec.KeyStorage.Base64Ciphertext())
		case record.KindRecoverMarker:
			builder.CloseGroup()
		}
	}

	return builder.Request(), nil
}

// FetchKeychains resolves this file's KeychainsRequest against the DJI
// keychain HTTP endpoint and returns one resolved Keychain per group, in
// file order. Versions below 13 need no keychain at all and return nil
// without making a request.
func (p *Parser) FetchKeychains(apiKey string) ([]keychain.Keychain, error) {
	if p.Version < 13 {
		return nil, nil
	}
	req, err := p.KeychainsRequest()
	if err != nil {
		return nil, err
	}
	return keychainapi.NewClient(apiKey).Fetch(req)
}

// FetchKeychainsAsync is FetchKeychains run on a background goroutine,
// sharing its request/response contract; see keychainapi.Client.FetchAsync.
func (p *Parser) FetchKeychainsAsync(apiKey string) <-chan keychainapi.FetchResult {
	out := make(chan keychainapi.FetchResult, 1)
	go func() {
		groups, err := p.FetchKeychains(apiKey)
		out <- keychainapi.FetchResult{Groups: groups, Err: err}
	}()
	return out
}

// Records decodes the full record stream (pass 2). keychains must be
// non-nil for version>=13 logs (ErrKeychainRequired otherwise); it is
// ignored for earlier versions, which carry no feature encryption at all.
// The active keychain advances to the next group in keychains each time a
// Recover boundary marker is encountered, matching the grouping
// KeychainsRequest built in pass 1.
func (p *Parser) Records(keychains []keychain.Keychain) ([]record.Record, error) {
	if p.Version >= 13 && keychains == nil {
		return nil, dlperrors.ErrKeychainRequired
	}

	queue := keychain.NewQueue(keychains)
	cursor := bytes.NewReader(p.data)
	if _, err := cursor.Seek(int64(p.prefix.RecordsOffset()), io.SeekStart); err != nil {
		return nil, dlperrors.NewParseError(0, "seek to records", err)
	}
	end := int64(p.prefix.RecordsEndOffset(uint64(len(p.data))))

	var records []record.Record
	active := queue.Head()
	for {
		reader := record.NewReader(cursor, p.Version, p.Details.ProductType, active, end)
		rec, err := reader.Next()
		if err != nil {
			break
		}
		if rec.Kind == record.KindRecoverMarker {
			active = queue.Advance()
		}
		records = append(records, rec)

		pos, err := cursor.Seek(0, io.SeekCurrent)
		if err != nil || pos >= end {
			break
		}
	}

	return records, nil
}

// Frames is Records followed by frame normalization: the decoded record
// stream is reduced to one Frame per OSD record, carrying forward whatever
// the most recent Gimbal/Camera/RC/Battery/Home/Recover/App records last
// said. See internal/frame for the state machine.
func (p *Parser) Frames(keychains []keychain.Keychain) ([]frame.Frame, error) {
	records, err := p.Records(keychains)
	if err != nil {
		return nil, err
	}
	return frame.RecordsToFrames(records, p.Details), nil
}
