package netlist

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/geometry"
)

// Top-level keys of a YAML netlist.
const (
	KeyModules = "Modules"
	KeyNets    = "Nets"
)

// Module attribute keys.
const (
	keyArea       = "area"
	keyCenter     = "center"
	keyFixed      = "fixed"
	keyRectangles = "rectangles"
)

const (
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagNull  = "!!null"
)

// moduleDoc is the YAML form of a module. Rectangles are [x, y, w, h] or
// [x, y, w, h, region], or a mapping of rectangle attributes when their
// fixed flag or name differ from the module's.
type moduleDoc struct {
	Area       *float64    `yaml:"area"`
	Center     []float64   `yaml:"center"`
	Fixed      bool        `yaml:"fixed"`
	Rectangles []yaml.Node `yaml:"rectangles"`
}

// Read parses a YAML netlist and builds it.
func Read(r io.Reader) (*Netlist, error) {
	modules, edges, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return New(modules, edges)
}

// Parse is Read over a byte slice.
func Parse(data []byte) (*Netlist, error) {
	return Read(bytes.NewReader(data))
}

// ReadFile reads and builds the YAML netlist at path.
func ReadFile(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Decode parses a YAML netlist into ordered modules and raw edges without
// resolving the edges. Module order follows the document.
func Decode(r io.Reader) ([]*Module, []NamedEdge, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode netlist")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, nil
	}

	root := doc.Content[0]
	if root.ShortTag() == tagNull {
		return nil, nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: netlist must be a mapping", root.Line)
	}

	var (
		modules []*Module
		edges   []NamedEdge
		err     error
	)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case KeyModules:
			if modules, err = decodeModules(val); err != nil {
				return nil, nil, err
			}
		case KeyNets:
			if edges, err = decodeNets(val); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return modules, edges, nil
}

func decodeModules(n *yaml.Node) ([]*Module, error) {
	if n.ShortTag() == tagNull {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: %s must be a mapping", n.Line, KeyModules)
	}

	modules := make([]*Module, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m, err := decodeModule(n.Content[i].Value, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func decodeModule(name string, n *yaml.Node) (*Module, error) {
	var md moduleDoc
	if n.ShortTag() != tagNull {
		if n.Kind != yaml.MappingNode {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: module %q must be a mapping", n.Line, name)
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch k := n.Content[i].Value; k {
			case keyArea, keyCenter, keyFixed, keyRectangles:
			default:
				return nil, errors.New(errors.ErrCodeUnknownAttribute, "line %d: module %q: unknown attribute %q", n.Content[i].Line, name, k)
			}
		}
		if err := n.Decode(&md); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidType, err, "module %q", name)
		}
	}

	opts := []ModuleOption{WithFixed(md.Fixed)}
	if md.Area != nil {
		opts = append(opts, WithArea(*md.Area))
	}
	if md.Center != nil {
		if len(md.Center) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "module %q: center must have two coordinates", name)
		}
		opts = append(opts, WithCenter(geometry.Pt(md.Center[0], md.Center[1])))
	}
	for i := range md.Rectangles {
		r, err := decodeRectangle(name, md.Fixed, &md.Rectangles[i])
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithRectangles(r))
	}
	return NewModule(name, opts...)
}

func decodeRectangle(module string, fixed bool, n *yaml.Node) (*geometry.Rectangle, error) {
	if n.Kind == yaml.MappingNode {
		return decodeRectangleAttrs(module, fixed, n)
	}
	if n.Kind != yaml.SequenceNode || (len(n.Content) != 4 && len(n.Content) != 5) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"line %d: module %q: rectangle must be [x, y, w, h] or [x, y, w, h, region]", n.Line, module)
	}

	var v [4]float64
	for i := range v {
		if err := n.Content[i].Decode(&v[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidType, err, "line %d: module %q: rectangle value", n.Content[i].Line, module)
		}
	}
	region := geometry.DefaultRegion
	if len(n.Content) == 5 {
		region = n.Content[4].Value
	}

	r, err := geometry.NewRectangle(
		geometry.WithCenter(geometry.Pt(v[0], v[1])),
		geometry.WithShape(geometry.Shape{W: v[2], H: v[3]}),
		geometry.WithFixed(fixed),
		geometry.WithRegion(region),
		geometry.WithName(module),
	)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", module, err)
	}
	return r, nil
}

// decodeRectangleAttrs reads {center: [x, y], shape: [w, h], region, fixed,
// name}. fixed and name default to the module's.
func decodeRectangleAttrs(module string, fixed bool, n *yaml.Node) (*geometry.Rectangle, error) {
	var attrs geometry.Attributes
	if err := n.Decode(&attrs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidType, err, "line %d: module %q: rectangle", n.Line, module)
	}
	if attrs == nil {
		attrs = geometry.Attributes{}
	}
	if _, ok := attrs[geometry.AttrFixed]; !ok {
		attrs[geometry.AttrFixed] = fixed
	}
	if _, ok := attrs[geometry.AttrName]; !ok {
		attrs[geometry.AttrName] = module
	}
	if _, ok := attrs[geometry.AttrShape]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: module %q: rectangle needs a shape", n.Line, module)
	}

	r, err := geometry.NewRectangleFromAttributes(attrs)
	if err != nil {
		return nil, fmt.Errorf("line %d: module %q: %w", n.Line, module, err)
	}
	return r, nil
}

func decodeNets(n *yaml.Node) ([]NamedEdge, error) {
	if n.ShortTag() == tagNull {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: %s must be a list", n.Line, KeyNets)
	}

	edges := make([]NamedEdge, 0, len(n.Content))
	for _, item := range n.Content {
		e, err := decodeNet(item)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// decodeNet reads [A, B, ...] with an optional trailing numeric weight.
// Quoted numbers are module names.
func decodeNet(n *yaml.Node) (NamedEdge, error) {
	if n.Kind != yaml.SequenceNode {
		return NamedEdge{}, errors.New(errors.ErrCodeInvalidFormat, "line %d: net must be a list", n.Line)
	}

	e := NamedEdge{Weight: DefaultWeight}
	items := n.Content
	if k := len(items); k > 0 && isNumber(items[k-1]) {
		if err := items[k-1].Decode(&e.Weight); err != nil {
			return NamedEdge{}, errors.Wrap(errors.ErrCodeInvalidWeight, err, "line %d: net weight", items[k-1].Line)
		}
		items = items[:k-1]
	}

	e.Modules = make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind != yaml.ScalarNode {
			return NamedEdge{}, errors.New(errors.ErrCodeInvalidFormat, "line %d: net member must be a module name", item.Line)
		}
		e.Modules = append(e.Modules, item.Value)
	}
	return e, nil
}

func isNumber(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode {
		return false
	}
	tag := n.ShortTag()
	return tag == tagInt || tag == tagFloat
}

// Write encodes the modules and edges of a netlist as YAML.
func Write(n *Netlist, w io.Writer) error {
	return Encode(w, n.Modules(), n.NamedEdges())
}

// Marshal returns the YAML encoding of a netlist.
func Marshal(n *Netlist) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a netlist to a YAML file.
func WriteFile(n *Netlist, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(n, f)
}

// Encode writes modules and edges in the format read by [Decode].
func Encode(w io.Writer, modules []*Module, edges []NamedEdge) error {
	mods := mapping()
	for _, m := range modules {
		mods.Content = append(mods.Content, str(m.Name()), encodeModule(m))
	}

	nets := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, e := range edges {
		net := flowSeq()
		for _, name := range e.Modules {
			net.Content = append(net.Content, str(name))
		}
		if e.Weight != DefaultWeight {
			net.Content = append(net.Content, num(e.Weight))
		}
		nets.Content = append(nets.Content, net)
	}

	root := mapping()
	root.Content = append(root.Content, str(KeyModules), mods, str(KeyNets), nets)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode netlist")
	}
	return enc.Close()
}

func encodeModule(m *Module) *yaml.Node {
	n := mapping()
	if area, ok := m.DeclaredArea(); ok {
		n.Content = append(n.Content, str(keyArea), num(area))
	}
	if c, ok := m.Center(); ok {
		n.Content = append(n.Content, str(keyCenter), flowSeq(num(c.X), num(c.Y)))
	}
	if m.Fixed() {
		n.Content = append(n.Content, str(keyFixed), boolean(true))
	}
	if m.NumRectangles() > 0 {
		rects := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, r := range m.Rectangles() {
			rects.Content = append(rects.Content, encodeRectangle(m, r))
		}
		n.Content = append(n.Content, str(keyRectangles), rects)
	}
	return n
}

// encodeRectangle uses the short list form unless the rectangle's fixed flag
// or name differ from the module's.
func encodeRectangle(m *Module, r *geometry.Rectangle) *yaml.Node {
	c, s := r.Center(), r.Shape()
	if r.Fixed() == m.Fixed() && r.Name() == m.Name() {
		rect := flowSeq(num(c.X), num(c.Y), num(s.W), num(s.H))
		if r.Region() != geometry.DefaultRegion {
			rect.Content = append(rect.Content, str(r.Region()))
		}
		return rect
	}

	rect := mapping()
	rect.Style = yaml.FlowStyle
	rect.Content = append(rect.Content,
		str(geometry.AttrCenter), flowSeq(num(c.X), num(c.Y)),
		str(geometry.AttrShape), flowSeq(num(s.W), num(s.H)),
	)
	if r.Region() != geometry.DefaultRegion {
		rect.Content = append(rect.Content, str(geometry.AttrRegion), str(r.Region()))
	}
	if r.Fixed() != m.Fixed() {
		rect.Content = append(rect.Content, str(geometry.AttrFixed), boolean(r.Fixed()))
	}
	if r.Name() != m.Name() {
		rect.Content = append(rect.Content, str(geometry.AttrName), str(r.Name()))
	}
	return rect
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func flowSeq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle, Content: items}
}

// str is a string scalar; the encoder quotes it when it would otherwise read
// back as another type.
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: s}
}

// num writes non-finite values in YAML's .inf and .nan spelling so they read
// back as floats.
func num(v float64) *yaml.Node {
	var s string
	switch {
	case math.IsInf(v, 1):
		s = ".inf"
	case math.IsInf(v, -1):
		s = "-.inf"
	case math.IsNaN(v):
		s = ".nan"
	default:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
