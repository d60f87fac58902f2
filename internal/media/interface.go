package media

import "context"

// Transformer converts one media file into another: audio extraction and
// audio cleanup both fit this shape.
type Transformer interface {
	Run(ctx context.Context, inputPath string) (string, error)
}
