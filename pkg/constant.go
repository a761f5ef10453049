package pkg

const (
	// pipelines are not loaded at 100% of nameplate capacity
	PIPELINE_UTILIZATION = 0.93
)

const (
	DEFAULT_CRF            = 0.1
	DEFAULT_PROJECT_LENGTH = 30
	DEFAULT_SNAP_RADIUS_KM = 5.0
)

// enum of solution status
type SolutionStatus string

const (
	STATUS_SOLVED     SolutionStatus = "solved"
	STATUS_INFEASIBLE SolutionStatus = "infeasible"
	STATUS_ERROR      SolutionStatus = "error"
)
