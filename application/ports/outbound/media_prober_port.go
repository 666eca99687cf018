package outbound

// MediaProberPort reads the duration in seconds of an encoded media file.
type MediaProberPort interface {
	Duration(filePath string) (float64, error)
}
