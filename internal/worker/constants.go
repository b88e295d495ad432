package worker

// DefaultWorkerCount is used when a pool is created with a non-positive size
const DefaultWorkerCount = 4

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerJobPanic  = "Worker job panicked"
	LogMsgDrainedJobs     = "Ran queued jobs after stop with cancelled context"
)
