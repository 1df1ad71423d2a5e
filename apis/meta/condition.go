// Package meta holds the schema descriptions shared by every API group of the controller.
package meta

import (
	"github.com/bexxmodd/theleague/codegen"
)

// ConditionRef is the definition name of the standard Kubernetes condition.
const ConditionRef = "io.k8s.apimachinery.pkg.apis.meta.v1.Condition"

const (
	conditionTypePattern   = `^([a-z0-9]([-a-z0-9]*[a-z0-9])?(\.[a-z0-9]([-a-z0-9]*[a-z0-9])?)*/)?(([A-Za-z0-9][-A-Za-z0-9_.]*)?[A-Za-z0-9])$`
	conditionReasonPattern = `^[A-Za-z]([A-Za-z0-9_,:]*[A-Za-z0-9_])?$`
)

// Definitions returns the shared definitions. The returned table is a fresh copy.
func Definitions() codegen.Definitions {
	return codegen.Definitions{
		ConditionRef: condition(),
	}
}

// Conditions declares the usual status conditions list.
func Conditions() codegen.TypeSchema {
	return codegen.ArrayOf("conditions", codegen.Ref("", ConditionRef)).
		Describe("Conditions represent the latest available observations of the resource's state.")
}

// condition mirrors metav1.Condition.
func condition() codegen.TypeSchema {
	var maxMessage int64 = 32768
	return codegen.Object("",
		codegen.String("type").Require().
			Matching(conditionTypePattern).
			Length(1, 316).
			Describe("type of condition in CamelCase or in foo.example.com/CamelCase."),
		codegen.Enum("status", "True", "False", "Unknown").Require().
			Describe("status of the condition, one of True, False, Unknown."),
		codegen.Integer("observedGeneration").
			WithFormat("int64").
			AtLeast(0).
			Describe("observedGeneration represents the .metadata.generation that the condition was set based upon."),
		codegen.String("lastTransitionTime").Require().
			WithFormat("date-time").
			Describe("lastTransitionTime is the last time the condition transitioned from one status to another."),
		codegen.String("reason").Require().
			Matching(conditionReasonPattern).
			Length(1, 1024).
			Describe("reason contains a programmatic identifier indicating the reason for the condition's last transition."),
		codegen.TypeSchema{
			Name:        "message",
			Kind:        codegen.SchemaKindScalar,
			Scalar:      codegen.ScalarString,
			Required:    true,
			Description: "message is a human readable message indicating details about the transition.",
			Constraints: codegen.Constraints{MaxLength: &maxMessage},
		},
	).Describe("Condition contains details for one aspect of the current state of this API Resource.")
}
