package i18n

// Key identifies a catalog message.
type Key string

const (
	KeyTitle             Key = "title"
	KeySource            Key = "source"
	KeyDestination       Key = "destination"
	KeyIncludeSubfolders Key = "include_subfolders"
	KeySortingStarted    Key = "sorting_started"
	KeySortingCompleted  Key = "sorting_completed"
	KeyWarning           Key = "warning"
	KeySelectFolders     Key = "select_folders"
	KeySuccess           Key = "success"

	// KeyFound takes the candidate count.
	KeyFound Key = "found"
	// KeyMoved takes the original name, final name and target folder.
	KeyMoved Key = "moved"
	// KeyFailed takes the file name and the error.
	KeyFailed Key = "failed"
	// KeyFallback takes the file name and the metadata outcome.
	KeyFallback Key = "fallback"
	// KeyCancelled takes the number of files left unprocessed.
	KeyCancelled Key = "cancelled"
	// KeyDestinationBusy takes the destination path.
	KeyDestinationBusy Key = "destination_busy"
	// KeyFailuresNote takes the failure count.
	KeyFailuresNote Key = "failures_note"

	KeyColumnMoved     Key = "column_moved"
	KeyColumnFailed    Key = "column_failed"
	KeyColumnRenamed   Key = "column_renamed"
	KeyColumnFallbacks Key = "column_fallbacks"
	KeyColumnSkipped   Key = "column_skipped"
	KeyColumnSize      Key = "column_size"
	KeyColumnDuration  Key = "column_duration"
)
