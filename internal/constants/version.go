package constants

// Version и PreCommitHash задаются при сборке через -ldflags:
//
//	go build -ldflags "-X github.com/Kargones/plancheck/internal/constants.Version=1.2.0"
var (
	Version       = "dev"
	PreCommitHash = "unknown"
)
