package column

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/colparams/internal/param"
	"github.com/zclconf/go-cty/cty"
)

const (
	// KeyFeedQuality is the required feed quality input.
	KeyFeedQuality = "FeedQuality"
	// KeyProblemType is the required problem type input.
	KeyProblemType = "ProblemType"
)

// Keys are looked up across both holders, so they must be unique across
// them and must not shadow a required parameter.
func init() {
	seen := map[string]string{KeyFeedQuality: "required", KeyProblemType: "required"}
	for _, holder := range []struct {
		name string
		keys []string
	}{
		{solverSchema.TypeName(), solverSchema.Keys()},
		{costSchema.TypeName(), costSchema.Keys()},
	} {
		for _, key := range holder.keys {
			if owner, exists := seen[key]; exists {
				panic(fmt.Sprintf("column: parameter '%s' of %s is already declared by %s", key, holder.name, owner))
			}
			seen[key] = holder.name
		}
	}
}

// Assigner is a parameter holder that accepts raw values by descriptor.
type Assigner interface {
	AssignValue(ctx context.Context, d param.Descriptor, raw any, strict bool) error
	Value(key string) (cty.Value, error)
}

// CostParameters returns the descriptors of CostParams in declaration order.
func CostParameters() []param.Descriptor {
	return costSchema.Descriptors()
}

// SolverParameters returns the descriptors of SolverParams in declaration order.
func SolverParameters() []param.Descriptor {
	return solverSchema.Descriptors()
}

// RequiredParameters returns the parameters that belong to no holder, in a
// fixed order.
func RequiredParameters() []param.Descriptor {
	return []param.Descriptor{
		param.Required(KeyFeedQuality),
		param.Required(KeyProblemType),
	}
}

// UserInterfaceDescriptors returns the solver descriptors sorted by key
// followed by the cost descriptors sorted by key. User interfaces rely on
// this order; new fields sort into place.
func UserInterfaceDescriptors() []param.Descriptor {
	solver := sortedByKey(SolverParameters())
	cost := sortedByKey(CostParameters())
	return append(solver, cost...)
}

// UserInterfaceKeys returns the keys of UserInterfaceDescriptors.
func UserInterfaceKeys() []string {
	ds := UserInterfaceDescriptors()
	keys := make([]string, len(ds))
	for i, d := range ds {
		keys[i] = d.Key
	}
	return keys
}

func sortedByKey(ds []param.Descriptor) []param.Descriptor {
	slices.SortStableFunc(ds, func(a, b param.Descriptor) int {
		return strings.Compare(a.Key, b.Key)
	})
	return ds
}
