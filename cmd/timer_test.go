package cmd_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("timer", func() {
	It("ticks until the limit and ends on the exact final time", func() {
		out, err := execute(nil, "timer", "--interval", "2ms", "--limit", "20ms", "--start-ms", "59990")
		Expect(err).NotTo(HaveOccurred())

		ticks := lines(out)
		Expect(ticks[0]).To(Equal("0:59"))
		Expect(ticks[len(ticks)-1]).To(Equal("1:00"))
		for _, tick := range ticks {
			Expect(tick).To(MatchRegexp(`^\d+:\d{2}$`))
		}
	})

	It("takes interval and limit from the config file", func() {
		writeConfig("[timer]\ninterval = \"1ms\"\nlimit = \"5ms\"\n")

		out, err := execute(nil, "timer", "--start-ms", "3600000")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines(out)).To(HaveEach("1:00:00"))
	})

	It("rejects a negative start", func() {
		_, err := execute(nil, "timer", "--limit", "1ms", "--start-ms", "-5")
		Expect(err).To(MatchError(ContainSubstring("invalid --start-ms")))
	})

	It("rejects positional arguments", func() {
		_, err := execute(nil, "timer", "60000")
		Expect(err).To(HaveOccurred())
	})
})
