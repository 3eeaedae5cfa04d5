package interfaces

import "context"

// OpenFilesService hands the launch-time "files to open" over to the
// front-end. TakeOpenFiles drains the held paths: each path is returned to
// exactly one caller, later calls observe an empty slice.
type OpenFilesService interface {
	TakeOpenFiles(ctx context.Context) ([]string, error)
}

// DocumentService performs whole-file reads and writes of Markdown documents.
// Paths may arrive wrapped in double quotes; implementations normalise them
// before touching the filesystem.
type DocumentService interface {
	ReadDocument(ctx context.Context, path string) (string, error)
	WriteDocument(ctx context.Context, path string, contents string) error
}
