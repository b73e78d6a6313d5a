package pipeline

import "fmt"

// Stage identifies one step of the pipeline. Transitions are strictly
// forward; Failed is terminal and reachable from any non-terminal stage.
type Stage int

const (
	StageIdle Stage = iota
	StageDownloading
	StageTranscribing
	StageSummarizing
	StageCapturing
	StageEnhancing
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageDownloading:
		return "downloading"
	case StageTranscribing:
		return "transcribing"
	case StageSummarizing:
		return "summarizing"
	case StageCapturing:
		return "capturing screenshots"
	case StageEnhancing:
		return "enhancing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError reports which stage a pipeline run failed in. Artifacts of
// the stages that completed before it stay on disk.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
