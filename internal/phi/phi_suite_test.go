package phi_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPhiSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "phi")
}
