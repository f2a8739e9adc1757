package barcode

import (
	"image"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"go.uber.org/zap"
)

// Recognizer converts a raster image into zero or more decoded barcode
// values, in detection order.
type Recognizer interface {
	Recognize(img image.Image) []string
}

// ZXingRecognizer decodes 1D product barcodes with gozxing, trying the
// UPC/EAN family first and Code 128 after it. Failures of any kind yield
// an empty result: the user cannot distinguish a decoder fault from a
// photo with no barcode in it, so neither does the bot.
type ZXingRecognizer struct {
	logger  *zap.Logger
	hints   map[gozxing.DecodeHintType]interface{}
	readers []gozxing.Reader
}

func NewZXingRecognizer(logger *zap.Logger) *ZXingRecognizer {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	return &ZXingRecognizer{
		logger: logger,
		hints:  hints,
		readers: []gozxing.Reader{
			oned.NewMultiFormatUPCEANReader(hints),
			oned.NewCode128Reader(),
		},
	}
}

func (r *ZXingRecognizer) Recognize(img image.Image) (codes []string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("barcode decoder panicked", zap.Any("panic", rec))
			codes = nil
		}
	}()

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		r.logger.Warn("failed to binarize image for decoding", zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{})
	for _, reader := range r.readers {
		res, err := reader.Decode(bmp, r.hints)
		if err != nil {
			// NotFoundException when this symbology is absent
			continue
		}

		text := strings.TrimSpace(strings.ToValidUTF8(res.GetText(), ""))
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		codes = append(codes, text)
	}

	if len(codes) == 0 {
		r.logger.Debug("no barcode decoded")
	}
	return codes
}
