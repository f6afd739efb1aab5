// Package version reports build metadata. Set the variables with ldflags:
//
//	go build -ldflags "-X github.com/ncobase/geocontent/version.Version=v1.2.0 \
//	  -X github.com/ncobase/geocontent/version.Branch=main"
package version
