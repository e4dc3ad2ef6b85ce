package morphcfg

import "errors"

var (
	errMissingInput  = errors.New("both OBJ1 and OBJ2 are required")
	errRatioRange    = errors.New("ratio must be in [0,1]")
	errNegativeSweep = errors.New("sweep must be >= 0")
)
