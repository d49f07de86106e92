// Package ir provides the intermediate representation (IR) shared by the
// XML and JSON codecs.
//
// # Overview
//
// The IR package defines the core data structures for representing markup
// documents as a tree of nodes. All documents (whether parsed from XML
// text, decoded from JSON values, or created programmatically) are
// represented as ir.Node trees. The IR is the sole coupling point between
// the two codecs: neither codec ever calls the other.
//
// # Node Structure
//
// A Node represents a single position in a document. Nodes can be:
//
//   - ElementKind: a tag with attributes, namespace information and children
//   - TextKind, CDATAKind, CommentKind: character payloads
//   - ProcInstKind: a processing instruction (Name is the target,
//     Value the data)
//
// Only elements may carry attributes, namespace declarations or children.
// All other kinds carry only Value.
//
// Each node maintains a non-owning back reference to its parent. A node
// has at most one parent at any instant: AddChild detaches the child from
// its previous parent before appending, so a node can never be aliased
// into two trees and cycles cannot arise.
//
// # Scalars
//
// Value and attribute values are scalars: nil, bool, string, int64,
// float64 or json.Number. ScalarString renders any scalar as text.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	el := ir.NewElement("user")
//	el.SetAttr("id", "7")
//	el.AddChild(ir.NewText("Ann"))
//
// # Cloning
//
// Cloning is the only supported way to reuse a subtree. Clone(false)
// copies scalar fields, attributes and namespace declarations and drops
// children and parent; Clone(true) additionally clones the full subtree
// and re-parents every copy.
//
// # Namespaces
//
// NSDecls holds the namespace declarations introduced at a node; they are
// not inherited. LookupNamespace resolves a prefix by walking the node and
// then its ancestors; an unresolved prefix is a normal (non-error)
// outcome. LookupPrefix performs the reverse URI-to-prefix search.
//
// # Comparison
//
// Compare defines a total order over trees and Equal reports structural
// equality, including attribute order and namespace declarations.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, clone them per goroutine or synchronize access
// yourself.
//
// # Related Packages
//
//   - github.com/xj-format/go-xj/xmlcodec - XML text to/from IR
//   - github.com/xj-format/go-xj/jsoncodec - JSON values to/from IR
//   - github.com/xj-format/go-xj/transform - rewrite rules over IR trees
package ir
