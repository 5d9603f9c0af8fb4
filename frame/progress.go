package frame

import "github.com/golang/glog"

// Progress receives lifecycle events from a running command.
type Progress interface {
	Start(jobID, message string)
	Stage(jobID, message string, stage, total int)
}

// GlogProgress reports progress through glog.
type GlogProgress struct{}

func (GlogProgress) Start(jobID, message string) {
	glog.Infof("[%s] %s", jobID, message)
}

func (GlogProgress) Stage(jobID, message string, stage, total int) {
	glog.V(1).Infof("[%s] %s (stage %d/%d)", jobID, message, stage, total)
}

type noProgress struct{}

func (noProgress) Start(string, string)            {}
func (noProgress) Stage(string, string, int, int) {}
