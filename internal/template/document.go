package template

import (
	samkit "github.com/samkit-io/samkit"
)

// Top-level section names in their fixed emission order.
const (
	sectionFormatVersion = "AWSTemplateFormatVersion"
	sectionTransform     = "Transform"
	sectionDescription   = "Description"
	sectionParameters    = "Parameters"
	sectionResources     = "Resources"
	sectionOutputs       = "Outputs"
)

// TransformSAM is the transform header every generated template carries.
const TransformSAM = "AWS::Serverless-2016-10-31"

var sectionRank = map[string]int{
	sectionFormatVersion: 0,
	sectionTransform:     1,
	sectionDescription:   2,
	sectionParameters:    3,
	sectionResources:     4,
	sectionOutputs:       5,
}

func rankSection(name string) int {
	if r, ok := sectionRank[name]; ok {
		return r
	}
	return len(sectionRank)
}

// Document is the template as an ordered tree. It is read from disk at the
// start of an operation and re-serialized at the end; nothing derived from
// it survives across operations.
type Document struct {
	root *Node
}

// New returns an empty SAM document carrying the format version and
// transform headers.
func New(description string) *Document {
	d := &Document{root: NewMap()}
	d.root.SetRanked(sectionFormatVersion, QuotedScalar("2010-09-09"), rankSection)
	d.root.SetRanked(sectionTransform, Scalar(TransformSAM), rankSection)
	if description != "" {
		d.root.SetRanked(sectionDescription, Scalar(description), rankSection)
	}
	return d
}

// Section returns a top-level section node, or nil.
func (d *Document) Section(name string) *Node {
	return d.root.Child(name)
}

func (d *Document) ensureSection(name string) *Node {
	if n := d.root.Child(name); n != nil {
		return n
	}
	n := NewMap()
	d.root.SetRanked(name, n, rankSection)
	return n
}

func (d *Document) dropIfEmpty(name string) {
	if n := d.root.Child(name); n != nil && n.Len() == 0 {
		d.root.Delete(name)
	}
}

// Resources returns the Resources section, or nil when absent.
func (d *Document) Resources() *Node {
	return d.root.Child(sectionResources)
}

// Resource returns the named resource node, or nil. Absence is a value;
// callers decide whether it is an error.
func (d *Document) Resource(name string) *Node {
	if res := d.Resources(); res != nil {
		return res.Child(name)
	}
	return nil
}

// HasResource reports whether the named resource exists.
func (d *Document) HasResource(name string) bool {
	return d.Resource(name) != nil
}

// ResourceNames returns all resource names in document order.
func (d *Document) ResourceNames() []string {
	if res := d.Resources(); res != nil {
		return res.Keys()
	}
	return nil
}

// ResourceType returns the resource's CloudFormation type, or "".
func (d *Document) ResourceType(name string) string {
	res := d.Resource(name)
	if res == nil {
		return ""
	}
	t := res.Child("Type")
	if t == nil {
		return ""
	}
	return t.Value()
}

// ResourcesOfType returns the names of resources with the given type, in
// document order.
func (d *Document) ResourcesOfType(resourceType string) []string {
	var names []string
	for _, name := range d.ResourceNames() {
		if d.ResourceType(name) == resourceType {
			names = append(names, name)
		}
	}
	return names
}

// AddResource appends a resource at the end of the Resources section.
func (d *Document) AddResource(name string, res *Node) {
	d.ensureSection(sectionResources).Set(name, res)
}

// RemoveResource deletes a resource, reporting whether it existed. The
// Resources section itself is never dropped.
func (d *Document) RemoveResource(name string) bool {
	res := d.Resources()
	if res == nil {
		return false
	}
	return res.Delete(name)
}

// Parameter returns the named Parameters entry, or nil.
func (d *Document) Parameter(name string) *Node {
	if p := d.root.Child(sectionParameters); p != nil {
		return p.Child(name)
	}
	return nil
}

// ParameterNames returns the Parameters entries in document order.
func (d *Document) ParameterNames() []string {
	if p := d.root.Child(sectionParameters); p != nil {
		return p.Keys()
	}
	return nil
}

// AddParameter appends a Parameters entry, creating the section on first use.
func (d *Document) AddParameter(name string, param *Node) {
	d.ensureSection(sectionParameters).Set(name, param)
}

// RemoveParameter deletes a Parameters entry and drops the section when it
// empties.
func (d *Document) RemoveParameter(name string) bool {
	p := d.root.Child(sectionParameters)
	if p == nil {
		return false
	}
	ok := p.Delete(name)
	d.dropIfEmpty(sectionParameters)
	return ok
}

// Output returns the named Outputs entry, or nil.
func (d *Document) Output(name string) *Node {
	if o := d.root.Child(sectionOutputs); o != nil {
		return o.Child(name)
	}
	return nil
}

// OutputNames returns the Outputs entries in document order.
func (d *Document) OutputNames() []string {
	if o := d.root.Child(sectionOutputs); o != nil {
		return o.Keys()
	}
	return nil
}

// AddOutput appends an Outputs entry, creating the section on first use.
func (d *Document) AddOutput(name string, out *Node) {
	d.ensureSection(sectionOutputs).Set(name, out)
}

// RemoveOutput deletes an Outputs entry and drops the whole section when it
// empties.
func (d *Document) RemoveOutput(name string) bool {
	o := d.root.Child(sectionOutputs)
	if o == nil {
		return false
	}
	ok := o.Delete(name)
	d.dropIfEmpty(sectionOutputs)
	return ok
}

// Description returns the template description, or "".
func (d *Document) Description() string {
	if n := d.root.Child(sectionDescription); n != nil {
		return n.Value()
	}
	return ""
}

// Resource-level keys keep a fixed order: Type, Properties, Metadata.
var resourceKeyRank = map[string]int{
	"Type":       0,
	"Properties": 1,
	"Metadata":   2,
}

func rankResourceKey(key string) int {
	if r, ok := resourceKeyRank[key]; ok {
		return r
	}
	return len(resourceKeyRank)
}

// Property ordering rules per resource type. These replace ad hoc
// insertion-point searches: Layers lands after Architectures and before
// Events, Auth after StageName, and so on. Unknown keys keep arrival order
// at the end.
var propertyRank = map[string]map[string]int{
	samkit.TypeFunction: {
		"Handler":       0,
		"Runtime":       1,
		"CodeUri":       2,
		"Architectures": 3,
		"MemorySize":    4,
		"Timeout":       5,
		"Layers":        6,
		"Environment":   7,
		"Events":        8,
		"Policies":      9,
	},
	samkit.TypeAPI: {
		"Name":      0,
		"StageName": 1,
		"Auth":      2,
	},
	samkit.TypeTable: {
		"TableName":            0,
		"BillingMode":          1,
		"AttributeDefinitions": 2,
		"KeySchema":            3,
	},
	samkit.TypeLogGroup: {
		"LogGroupName":    0,
		"RetentionInDays": 1,
	},
	samkit.TypeSSMParameter: {
		"Name":  0,
		"Type":  1,
		"Value": 2,
	},
	samkit.TypeLayerVersion: {
		"LayerName":          0,
		"ContentUri":         1,
		"CompatibleRuntimes": 2,
		"RetentionPolicy":    3,
	},
	samkit.TypeUserPool: {
		"UserPoolName":           0,
		"Policies":               1,
		"UsernameAttributes":     2,
		"AutoVerifiedAttributes": 3,
	},
	samkit.TypeUserPoolClient: {
		"UserPoolId":        0,
		"ExplicitAuthFlows": 1,
		"GenerateSecret":    2,
	},
}

// PropertyRank returns the ordering function for a resource type's
// Properties block.
func PropertyRank(resourceType string) func(string) int {
	ranks := propertyRank[resourceType]
	return func(key string) int {
		if r, ok := ranks[key]; ok {
			return r
		}
		return 100
	}
}

// NewResource returns a resource node of the given type with an empty
// Properties block.
func NewResource(resourceType string) *Node {
	res := NewMap()
	res.Set("Type", Scalar(resourceType))
	res.Set("Properties", NewMap())
	return res
}

// Properties returns a resource's Properties block, or nil.
func Properties(res *Node) *Node {
	if res == nil {
		return nil
	}
	return res.Child("Properties")
}

// SetProperty inserts or replaces a property on a resource, honoring the
// type's property ordering rules.
func SetProperty(res *Node, key string, value *Node) {
	props := res.Child("Properties")
	if props == nil {
		props = NewMap()
		res.SetRanked("Properties", props, rankResourceKey)
	}
	t := ""
	if tn := res.Child("Type"); tn != nil {
		t = tn.Value()
	}
	props.SetRanked(key, value, PropertyRank(t))
}

// SetMetadata inserts or replaces a resource's Metadata block.
func SetMetadata(res *Node, meta *Node) {
	res.SetRanked("Metadata", meta, rankResourceKey)
}
