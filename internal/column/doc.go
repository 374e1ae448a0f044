// Package column holds the parameter holders of the distillation-column
// design tool and the registry functions the user interface and loaders use
// to list and edit them.
//
// There are two holders. CostParams carries economic, design and physical
// parameters; SolverParams carries options of the numeric solver. Field names
// and Go types of both structs are the contract with the solver that consumes
// them and must not be renamed. Vector fields (CostParams.Lambda and
// CostParams.PM) are not parameters: they are read directly by the solver,
// where empty means "use the engine default".
//
// Two more parameters, FeedQuality and ProblemType, are required inputs of
// every run but belong to no holder. They are supplied separately, have no
// default and are never converted here.
package column
