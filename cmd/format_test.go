package cmd_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("format", func() {
	DescribeTable("renders clock strings",
		func(ms string, expected string) {
			out, err := execute(nil, "format", ms)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(expected + "\n"))
		},
		Entry("zero", "0", "0:00"),
		Entry("under a minute", "59000", "0:59"),
		Entry("one minute", "60000", "1:00"),
		Entry("just under an hour", "3599000", "59:59"),
		Entry("one hour", "3600000", "1:00:00"),
		Entry("hour, minute and second", "3661000", "1:01:01"),
		Entry("fractional milliseconds truncate", "61999.9", "1:01"),
	)

	It("keeps argument order", func() {
		out, err := execute(nil, "format", "-p", "4", "3661000", "59000", "0", "7975000")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines(out)).To(Equal([]string{"1:01:01", "0:59", "0:00", "2:12:55"}))
	})

	It("reads values from a file, skipping blanks and comments", func() {
		path := filepath.Join(GinkgoT().TempDir(), "times.txt")
		Expect(os.WriteFile(path, []byte("# solve times\n60000\n\n  90000  \n"), 0o644)).To(Succeed())

		out, err := execute(nil, "format", "120000", "--file", path)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines(out)).To(Equal([]string{"2:00", "1:00", "1:30"}))
	})

	It("reads values from stdin", func() {
		out, err := execute(strings.NewReader("3600000\n1000\n"), "format", "-f", "-")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines(out)).To(Equal([]string{"1:00:00", "0:01"}))
	})

	It("formats negative values permissively by default", func() {
		out, err := execute(nil, "format", "--", "-1000")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("-1:-1\n"))
	})

	It("rejects invalid values in strict mode but prints the rest", func() {
		out, err := execute(nil, "format", "--strict", "60000", "NaN", "--", "-5")
		Expect(err).To(MatchError("2 of 3 values could not be formatted"))
		Expect(out).To(Equal("1:00\n"))
	})

	It("takes strict mode from the config file", func() {
		writeConfig("[format]\nstrict = true\n")

		_, err := execute(nil, "format", "Inf")
		Expect(err).To(HaveOccurred())
	})

	It("lets the flag override the config file", func() {
		writeConfig("[format]\nstrict = true\n")

		out, err := execute(nil, "format", "--strict=false", "NaN")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("NaN:NaN\n"))
	})

	It("fails on unparseable values", func() {
		out, err := execute(nil, "format", "soon")
		Expect(err).To(MatchError(ContainSubstring("1 of 1 values")))
		Expect(out).To(BeEmpty())
	})

	It("fails without any values", func() {
		_, err := execute(nil, "format")
		Expect(err).To(MatchError(ContainSubstring("no values to format")))
	})

	It("fails on a missing value file", func() {
		_, err := execute(nil, "format", "-f", filepath.Join(GinkgoT().TempDir(), "missing.txt"))
		Expect(err).To(MatchError(ContainSubstring("failed to open value file")))
	})

	It("fails on an invalid config file", func() {
		writeConfig("[format]\nparallelism = 0\n")

		_, err := execute(nil, "format", "1000")
		Expect(err).To(MatchError(ContainSubstring("failed to load config")))
	})
})
