// Package grpcsource streams raw transactions from a geyser-style push
// feed over gRPC. No protobuf schema is in scope for this project, so
// the stream is opened with a hand-written grpc.StreamDesc and a raw
// byte codec (codec.go) instead of generated client code: grpc still
// owns framing, flow control, and reconnection semantics, only the
// payload encoding is skipped. Modeled on the connection-pool dial
// idiom other Solana Go services use for their own geyser clients.
package grpcsource

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource"
)

func init() {
	encoding.RegisterCodec(rawCodec{})
}

var streamDesc = grpc.StreamDesc{
	StreamName:    "Subscribe",
	ServerStreams: true,
	ClientStreams: false,
}

// subscribeMethod is the full gRPC method name the remote feed exposes.
// It is a convention, not a generated constant, since there is no
// .proto file to generate it from.
const subscribeMethod = "/solanastream.RawFeed/Subscribe"

// Source pulls RawTransaction envelopes off one server-streaming gRPC
// call. Each envelope on the wire is: 8-byte big-endian slot, 1-byte
// success flag, 4-byte big-endian signature length, signature bytes,
// 4-byte big-endian log-block length, log lines newline-joined, 4-byte
// big-endian account-key-block length, account keys newline-joined.
type Source struct {
	conn   *grpc.ClientConn
	closeConn bool

	mu     sync.Mutex
	stream grpc.ClientStream
}

// Dial opens a connection to target and starts the subscribe stream.
// The caller is responsible for passing any TLS/auth DialOptions the
// target requires; Dial does not assume insecure transport.
func Dial(ctx context.Context, target string, opts ...grpc.DialOption) (*Source, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rawCodec{}.Name())))
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpcsource: dial %s: %w", target, err)
	}

	s := &Source{conn: conn, closeConn: true}
	if err := s.openStream(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already-dialled connection the caller continues to own;
// Close will not close conn.
func New(ctx context.Context, conn *grpc.ClientConn) (*Source, error) {
	s := &Source{conn: conn}
	if err := s.openStream(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Source) openStream(ctx context.Context) error {
	stream, err := s.conn.NewStream(ctx, &streamDesc, subscribeMethod)
	if err != nil {
		return fmt.Errorf("grpcsource: open stream: %w", err)
	}
	if err := stream.SendMsg(&rawFrame{}); err != nil {
		return fmt.Errorf("grpcsource: send subscribe request: %w", err)
	}
	if err := stream.CloseSend(); err != nil {
		return fmt.Errorf("grpcsource: close send: %w", err)
	}
	s.stream = stream
	return nil
}

// Next blocks until the next envelope arrives on the stream.
func (s *Source) Next(ctx context.Context) (*domain.RawTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := &rawFrame{}
	if err := s.stream.RecvMsg(frame); err != nil {
		if err == io.EOF {
			return nil, ingestsource.ErrSourceExhausted
		}
		return nil, fmt.Errorf("%w: recv: %v", ingestsource.ErrTransientSource, err)
	}

	tx, err := decodeEnvelope(frame.data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ingestsource.ErrFatalSource, err)
	}
	return tx, nil
}

// Close closes the connection if Dial opened it, which also ends the
// stream. For a Source built with New it does nothing: the stream ends
// with the context given to New or when the caller closes conn.
func (s *Source) Close() error {
	if s.closeConn {
		return s.conn.Close()
	}
	return nil
}

const envelopeHeaderLen = 8 + 1 + 4

func decodeEnvelope(b []byte) (*domain.RawTransaction, error) {
	if len(b) < envelopeHeaderLen {
		return nil, fmt.Errorf("envelope too short: %d bytes", len(b))
	}

	slot := binary.BigEndian.Uint64(b[0:8])
	success := b[8] != 0
	sigLen := binary.BigEndian.Uint32(b[9:13])
	off := envelopeHeaderLen

	if len(b) < off+int(sigLen)+4 {
		return nil, fmt.Errorf("envelope signature length %d exceeds payload", sigLen)
	}
	sig := string(b[off : off+int(sigLen)])
	off += int(sigLen)

	logsLen := binary.BigEndian.Uint32(b[off : off+4])
	off += 4
	if len(b) < off+int(logsLen)+4 {
		return nil, fmt.Errorf("envelope log block length %d exceeds payload", logsLen)
	}
	logs := splitNonEmpty(string(b[off : off+int(logsLen)]))
	off += int(logsLen)

	acctsLen := binary.BigEndian.Uint32(b[off : off+4])
	off += 4
	if len(b) < off+int(acctsLen) {
		return nil, fmt.Errorf("envelope account block length %d exceeds payload", acctsLen)
	}
	accounts := splitNonEmpty(string(b[off : off+int(acctsLen)]))

	return &domain.RawTransaction{
		Signature:   sig,
		Slot:        slot,
		Success:     success,
		Logs:        logs,
		AccountKeys: accounts,
	}, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
