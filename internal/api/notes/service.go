package notes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/evgeniy-krivenko/flomo-relay/internal/entity"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/grpcx"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

var _ grpcx.Service = (*Service)(nil)

var _ NoteRelayServer = (*Service)(nil)

type notesUsecase interface {
	WriteNote(ctx context.Context, note entity.Note) flomo.Result
	Status(ctx context.Context) entity.RelayStatus
}

type Service struct {
	notes notesUsecase
}

func New(notes notesUsecase) *Service {
	return &Service{notes: notes}
}

// RegisterService implements grpcx.Service.
func (s *Service) RegisterService(r grpc.ServiceRegistrar) {
	r.RegisterService(&NoteRelayServiceDesc, s)
}

func (s *Service) Test(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := s.notes.Status(ctx)

	out, err := structpb.NewStruct(map[string]any{
		"status":        st.Status,
		"message":       st.Message,
		"flomo_api_url": st.FlomoAPIURL,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build status: %v", err)
	}

	return out, nil
}

func (s *Service) WriteNote(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Value, error) {
	res := s.notes.WriteNote(ctx, entity.Note{Content: in.GetValue()})
	if !res.OK() {
		return nil, resultError(ctx, res)
	}

	out, err := structpb.NewValue(protoSafe(res.Payload))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "convert flomo reply: %v", err)
	}

	return out, nil
}

func resultError(ctx context.Context, res flomo.Result) error {
	code := codes.Internal
	switch {
	case errors.Is(res.Err, flomo.ErrEmptyContent):
		code = codes.InvalidArgument
	case flomo.IsRemote(res.Err):
		code = codes.FailedPrecondition
	default:
		var terr *flomo.TransportError
		if errors.As(res.Err, &terr) {
			code = codes.Unavailable
		}
	}

	st := status.New(code, res.ErrorMessage())

	m, ok := res.Payload.(map[string]any)
	if !ok {
		return st.Err()
	}

	detail, err := structpb.NewStruct(protoSafe(m).(map[string]any))
	if err != nil {
		slogx.Warn(ctx, "drop error payload from grpc status", slogx.Err(err))
		return st.Err()
	}

	withDetails, err := st.WithDetails(detail)
	if err != nil {
		slogx.Warn(ctx, "attach error payload to grpc status", slogx.Err(err))
		return st.Err()
	}

	return withDetails.Err()
}

// maxExactDouble is the largest integer a protobuf double holds exactly.
const maxExactDouble = 1 << 53

// protoSafe rewrites json.Number values into types structpb accepts. Numbers
// a double cannot represent exactly are kept as their decimal text.
func protoSafe(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = protoSafe(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = protoSafe(item)
		}
		return out
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if n > maxExactDouble || n < -maxExactDouble {
				return v.String()
			}
			return float64(n)
		}
		if f, err := v.Float64(); err == nil && strings.ContainsAny(v.String(), ".eE") {
			return f
		}
		return v.String()
	default:
		return v
	}
}
