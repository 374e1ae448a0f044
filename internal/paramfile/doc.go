// Package paramfile loads parameter files into column holders and writes
// editable templates of them.
//
// A parameter file has up to three sections: "required" carries the required
// inputs (FeedQuality, ProblemType) that belong to no holder, and "cost" and
// "solver" carry values for CostParams and SolverParams. Both HCL and YAML
// files are understood:
//
//	required {
//	  FeedQuality = 1
//	  ProblemType = "min-cost"
//	}
//	cost {
//	  BaseHeight = 5
//	  MaxTrays   = "150"
//	}
//
// Holder values are converted by the holders themselves, strictly or not as
// the caller requests. Required values are passed through unconverted.
package paramfile
