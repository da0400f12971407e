package generate

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/easeaico/sticker-journal/internal/journal"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// StylePrompt wraps a user description in the art direction for the kind.
func StylePrompt(description string, kind journal.StickerKind) string {
	if kind == journal.KindWashi {
		return fmt.Sprintf("A strip of washi tape pattern with %s. Horizontal rectangular strip. "+
			"Watercolor or pastel aesthetic, semi-transparent edges, isolated on white background.", description)
	}
	return fmt.Sprintf("A high-quality, cute, die-cut sticker of %s. Vector art style, watercolor texture, "+
		"thick white border around the shape, isolated on a white background. Charming, scrapbook aesthetic.", description)
}

// GenerateAsset renders a sticker or washi strip and returns it as a data URI.
// ok is false when the response carried no image; that is not an error.
// Transport and service failures are returned wrapped in ErrGeneration.
func (c *Client) GenerateAsset(ctx context.Context, description string, kind journal.StickerKind) (dataURI string, ok bool, err error) {
	if err := c.checkConfigured(); err != nil {
		return "", false, err
	}

	resp, err := c.models.GenerateContent(ctx, c.imageModel, genai.Text(StylePrompt(description, kind)), nil)
	if err != nil {
		c.log.Error("Image generation failed", zap.String("kind", string(kind)), zap.Error(err))
		return "", false, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	blob := firstInlineImage(resp)
	if blob == nil {
		c.log.Info("Image response contained no inline image", zap.String("kind", string(kind)))
		return "", false, nil
	}
	return DataURI(blob.MIMEType, blob.Data), true, nil
}

// DataURI encodes a payload as data:<mime>;base64,<payload>.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// firstInlineImage scans the first candidate's parts in order.
func firstInlineImage(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}
