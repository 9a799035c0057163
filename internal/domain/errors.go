package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoFilesProvided     = errors.New("no files provided")
	ErrNoFilesToProcess    = errors.New("no files to process")
	ErrEmptyDataset        = errors.New("no extracted data available")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
