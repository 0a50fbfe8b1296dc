// Package implied rewrites the non-implied constraints of a trait declaration
// into implied ones.
//
// A constraint on a trait's type parameter or a where-clause predicate about
// some type other than Self is only checked at use sites; it is not "implied"
// by `T: Trait` elsewhere. Bounds on Self (supertraits) are. The rewrite moves
// every `X: Bounds` onto Self:
//
//	X: Bounds  ==>  Self: ::implied_bounds::ImpliedPredicate<X, Impls: Bounds>
//
// which the helper trait's blanket impl makes equivalent while turning the
// constraint into a supertrait.
//
// The pipeline is Extract, Wrap, Apply: extract the constraints, wrap each one
// around Self, prepend the wrappers to the where clause. Warnings are returned
// as diagnostics and also rendered as inert declarations that make rustc
// report them at build time.
package implied
