// SPDX-License-Identifier: MIT

// Package lvstat is a small toolkit for exploratory multivariate statistics
// on in-memory tables: principal component analysis and agglomerative
// hierarchical clustering, from CSV to a YAML/JSON report.
//
// What is in the box?
//
//	• Data loading and cleaning: CSV with an explicit schema, sentinel recoding,
//	  column selection, group means, removal of incomplete rows
//	• Standardization: z-scores with named zero-variance errors
//	• PCA: Jacobi (default) or SVD solver, deterministic order and signs,
//	  importance table, projection of new data, biplot coordinates
//	• Distances: Euclidean, Manhattan, Maximum, or a validated precomputed matrix
//	• Clustering: complete, single and average linkage with deterministic ties,
//	  cuts by k or height, cophenetic distances, child rotation
//	• Tree comparison: entanglement, one- and two-sided untangling,
//	  cophenetic correlation between trees
//
// Packages:
//
//	dataset/      CSV reader, Frame cleaning operations, Observations
//	standardize/  z-score transform and degenerate-feature detection
//	pca/          principal components, scores, summary, biplot data
//	distance/     Dissimilarity matrices
//	hclust/       merge trees, cuts, cophenetic matrices
//	tanglegram/   entanglement and untangling of two trees
//	matrix/       dense matrices, validators, covariance, Jacobi eigen
//	analysis/     the two pipelines end to end, with structured logging
//	report/       serializable results
//	config/       defaults, YAML file and LVSTAT_* environment
//
// The numerical packages are pure and never log. Ties are broken
// deterministically everywhere, so identical input gives identical output.
//
// Command line:
//
//	go install github.com/katalvlaran/lvstat/cmd/lvstat@latest
//	lvstat pca foods.csv --label name --components 3
//	lvstat cluster chemistry.csv --group-by site_code --cut 4 -o report.yaml
package lvstat
