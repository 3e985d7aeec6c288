// Package scene defines the host document contracts textcutter operates on,
// plus the two pure policies that depend only on them: reading-position
// ordering and the instance containment guard.
//
// The host owns the node tree. Engine code never reads ambient state such as
// a current selection; the nodes a request operates on are passed in
// explicitly.
package scene
