package telegram

import (
	"context"
	"errors"

	"github.com/sophist-bot/server/internal/bot/model"
	errx "github.com/sophist-bot/server/internal/core/error"
)

// maxMediaBytes caps in-memory media downloads (the Bot API serves at most
// 20 MiB per file anyway).
const maxMediaBytes = 20 * 1024 * 1024

// FetchMedia resolves a gateway file handle to in-memory bytes plus the
// fixed MIME type for the media kind. Every failure, including an empty
// payload, comes back wrapped as a media download error.
func (c *Client) FetchMedia(ctx context.Context, fileID string, kind model.MediaKind) (model.MediaPart, error) {
	mime := kind.MIME()
	if mime == "" {
		return model.MediaPart{}, errx.WrapMedia(errors.New("unknown media kind"))
	}

	f, err := c.getFile(ctx, fileID)
	if err != nil {
		return model.MediaPart{}, errx.WrapMedia(err)
	}

	data, err := c.downloadFile(ctx, f.FilePath, maxMediaBytes)
	if err != nil {
		return model.MediaPart{}, errx.WrapMedia(err)
	}
	if len(data) == 0 {
		return model.MediaPart{}, errx.WrapMedia(errors.New("empty media payload"))
	}

	return model.MediaPart{Data: data, MIME: mime}, nil
}
