package notes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evgeniy-krivenko/flomo-relay/internal/entity"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

const shownURLLen = 30

type noteWriter interface {
	WriteNote(ctx context.Context, content string) flomo.Result
	Endpoint() flomo.Endpoint
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	writer noteWriter `option:"mandatory" validate:"required"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

func (u *Usecase) WriteNote(ctx context.Context, note entity.Note) flomo.Result {
	res := u.writer.WriteNote(ctx, note.Content)
	if !res.OK() {
		slogx.Error(ctx, "failed to write note",
			slog.Int("remote_status", res.StatusCode),
			slogx.Err(res.Err),
		)
		return res
	}

	slogx.Debug(ctx, "success to write note", slog.String("memo_url", res.MemoURL()))
	return res
}

func (u *Usecase) Status(ctx context.Context) entity.RelayStatus {
	slogx.Debug(ctx, "status requested")

	return entity.RelayStatus{
		Status:      "success",
		Message:     "server is working",
		FlomoAPIURL: u.writer.Endpoint().Redacted(shownURLLen),
	}
}
