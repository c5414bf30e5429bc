// Package files provides file discovery and report-writing utilities.
//
// Discovery lists measurement files in a directory by extension, in natural
// name order (test_2.dat before test_10.dat). Manager writes report
// artifacts below the output directory, replacing files atomically.
//
//	discovery := files.NewDiscovery("")
//	found, err := discovery.FindDataFiles("group_8", ".dat")
package files
