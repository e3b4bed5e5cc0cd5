package awis_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/matzehuels/awis/pkg/integrations/awis"
)

func ExampleSigner_Sign() {
	signer, err := awis.NewSigner(awis.Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secret"}, "", nil)
	if err != nil {
		panic(err)
	}
	at := time.Date(2014, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	req, err := signer.Sign(awis.Params{Host: "github.com", ResponseGroups: []awis.ResponseGroup{awis.GroupRank}}, at)
	if err != nil {
		panic(err)
	}
	fmt.Println(req.Signature)
	// Output:
	// MZQLgBVWwx31m9BR21JxhrqiIOkAsPIgNgLAAMhENQs=
}

func ExampleClient_FetchURLInfo() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<UrlInfoResponse><Response><UrlInfoResult><Alexa>
<TrafficData><DataUrl type="canonical">github.com</DataUrl><Rank>551</Rank></TrafficData>
</Alexa></UrlInfoResult></Response></UrlInfoResponse>`)
	}))
	defer server.Close()

	client, err := awis.NewClient(
		awis.Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secret"},
		awis.WithEndpoint(server.URL),
	)
	if err != nil {
		panic(err)
	}
	info, err := client.FetchURLInfo(context.Background(), "github.com", awis.GroupRank)
	if err != nil {
		panic(err)
	}
	fmt.Println(*info.DataURL, *info.Rank, info.LinksInCount == nil, len(info.RelatedLinks))
	// Output:
	// github.com 551 true 0
}

func ExampleCredentials_String() {
	creds := awis.Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secret"}
	fmt.Println(creds)
	// Output:
	// Credentials{AccessKeyID: AKIDEXAMPLE, SecretAccessKey: [redacted]}
}
