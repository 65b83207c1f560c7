package rpc

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"

	grpcmw "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/signer"
)

// Server adapts a signer.Signer to the SignerServer interface, translating
// between the domain types in crypto/ecash and the wire messages in this
// package. It never signs or verifies anything itself.
type Server struct {
	signer *signer.Signer
	logger *slog.Logger
}

func NewServer(s *signer.Signer) *Server {
	return &Server{signer: s, logger: newLogger()}
}

func newLogger() *slog.Logger {
	replacer := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			source := a.Value.Any().(*slog.Source)
			source.File = filepath.Base(source.File)
			source.Function = filepath.Base(source.Function)
		}
		return a
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, ReplaceAttr: replacer}))
}

func asStatus(err error) error {
	if ecErr, ok := err.(*ecash.Error); ok {
		switch ecErr.Kind {
		case ecash.KindStructural:
			return status.Error(codes.InvalidArgument, ecErr.Error())
		case ecash.KindCrypto:
			return status.Error(codes.InvalidArgument, ecErr.Error())
		case ecash.KindState:
			return status.Error(codes.FailedPrecondition, ecErr.Error())
		case ecash.KindResource:
			return status.Error(codes.Unavailable, ecErr.Error())
		case ecash.KindConfig:
			return status.Error(codes.FailedPrecondition, ecErr.Error())
		default:
			return status.Error(codes.Internal, ecErr.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

func (s *Server) DeclareKeyset(ctx context.Context, req *DeclareKeysetRequest) (*DeclareKeysetResponse, error) {
	ks, err := s.signer.DeclareKeyset(crypto.Unit(req.Unit), req.Index, uint8(req.MaxOrder), uint16(req.InputFeePpk))
	if err != nil {
		s.logger.Error("declare_keyset failed", "error", err)
		return nil, asStatus(err)
	}

	resp := &DeclareKeysetResponse{
		KeysetId:    ks.Id,
		Unit:        uint32(ks.Unit),
		InputFeePpk: uint32(ks.InputFeePpk),
	}
	for amount, kp := range ks.Keys {
		resp.Keys = append(resp.Keys, &KeysetPublicKey{
			Amount:    amount,
			PublicKey: kp.PublicKey.SerializeCompressed(),
		})
	}
	return resp, nil
}

func (s *Server) SetActive(ctx context.Context, req *SetActiveRequest) (*SetActiveResponse, error) {
	if err := s.signer.SetActive(req.KeysetId, req.Active); err != nil {
		return nil, asStatus(err)
	}
	return &SetActiveResponse{}, nil
}

func (s *Server) GetRootPubKey(ctx context.Context, req *GetRootPubKeyRequest) (*GetRootPubKeyResponse, error) {
	pub, err := s.signer.GetRootPubKey()
	if err != nil {
		return nil, asStatus(err)
	}
	return &GetRootPubKeyResponse{PublicKey: pub.SerializeCompressed()}, nil
}

func (s *Server) SignBlindedMessages(ctx context.Context, req *SignBlindedMessagesRequest) (*SignBlindedMessagesResponse, error) {
	messages := make(ecash.BlindedMessages, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ecash.BlindedMessage{
			Amount:   m.Amount,
			KeysetId: m.KeysetId,
			BlindedB: hex.EncodeToString(m.B),
		}
	}

	sigs, err := s.signer.SignBlindedMessages(messages)
	if err != nil {
		return nil, asStatus(err)
	}

	resp := &SignBlindedMessagesResponse{Signatures: make([]*BlindedSignature, len(sigs))}
	for i, sig := range sigs {
		cBytes, err := hex.DecodeString(sig.C_)
		if err != nil {
			return nil, asStatus(ecash.NewError(ecash.KindCrypto, "signer returned an unparsable signature"))
		}
		resp.Signatures[i] = &BlindedSignature{Amount: sig.Amount, KeysetId: sig.KeysetId, C: cBytes}
	}
	return resp, nil
}

func (s *Server) VerifyProofs(ctx context.Context, req *VerifyProofsRequest) (*VerifyProofsResponse, error) {
	proofs := make(ecash.Proofs, len(req.Proofs))
	for i, p := range req.Proofs {
		proofs[i] = ecash.Proof{
			Amount:   p.Amount,
			KeysetId: p.KeysetId,
			Secret:   p.Secret,
			C:        hex.EncodeToString(p.C),
		}
	}

	valid, invalid, err := s.signer.VerifyProofs(proofs)
	if err != nil {
		return nil, asStatus(err)
	}

	resp := &VerifyProofsResponse{Valid: valid, InvalidIndices: make([]int32, len(invalid))}
	for i, idx := range invalid {
		resp.InvalidIndices[i] = int32(idx)
	}
	return resp, nil
}

// RegisterHealth registers a default health service, which reports SERVING
// for the server as a whole (the empty service name), the same health
// wiring as mint/rpc/rpc.go.
func RegisterHealth(s *grpc.Server) {
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)
}

// UnaryLoggingInterceptor mirrors the teacher's InterceptorLogger wiring.
func UnaryLoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return grpcmw.UnaryServerInterceptor(func(ctx context.Context, lvl grpcmw.Level, msg string, fields ...any) {
		switch lvl {
		case grpcmw.LevelDebug:
			logger.DebugContext(ctx, msg, fields...)
		case grpcmw.LevelInfo:
			logger.InfoContext(ctx, msg, fields...)
		case grpcmw.LevelWarn:
			logger.WarnContext(ctx, msg, fields...)
		default:
			logger.ErrorContext(ctx, msg, fields...)
		}
	})
}
