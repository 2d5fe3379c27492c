// Package regforest loads pre-trained regression forests from RFCSV files
// and evaluates them on feature vectors.
//
// An RFCSV file starts with a header line
//
//	### NTREES=<n> FEATURE_DIM=<d> LENGTH=<len>
//
// followed by one record per tree node in the form
//
//	node,leftchild,rightchild,splitidx,value
//
// where node numbering restarts at 0 for each tree root, child indices are
// tree-local, and splitidx -1 marks a leaf whose value column holds the
// prediction. Predict descends every tree (right on feature > split value)
// and returns the mean of the leaf values.
package regforest
