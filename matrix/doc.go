// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra core used by the lvstat
// pipelines: a row-major Dense type, shape and symmetry validators, matrix
// products, column centering and sample covariance, and a Jacobi eigen solver
// for symmetric matrices.
//
// All public entry points return sentinel errors (see errors.go) wrapped with
// an operation tag; match them with errors.Is. Loops run in fixed i→j order so
// results are bit-for-bit reproducible for identical inputs.
//
// Every kernel accepts the Matrix interface and takes a flat-slice fast path
// when both operands are *Dense.
package matrix
