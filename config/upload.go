package config

type UploadConfig struct {
	AllowedMimeTypes []string // empty: any type
	MaxSizeMB        int64
	PathPrefix       string
}

const (
	EventPhotoContext = "event_photo"
	EventFileContext  = "event_file"
)

var UploadContexts = map[string]UploadConfig{
	EventPhotoContext: {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		MaxSizeMB:        20,
		PathPrefix:       "events/photos",
	},
	EventFileContext: {
		MaxSizeMB:  50,
		PathPrefix: "events/files",
	},
}
