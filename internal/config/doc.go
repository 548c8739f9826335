// Package config defines the contract between profiles and the hierarchical
// configuration they read: the Source interface, the merge strategies a
// lookup may ask for, and the shape a caller expects back.
//
// A Source returns one value per lookup path, assembled from several
// configuration levels ordered from most to least specific. Levels is the
// in-memory implementation shared by every concrete source; the file-backed
// one lives in the source package.
package config
