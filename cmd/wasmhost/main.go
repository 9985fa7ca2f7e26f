//go:build js && wasm
// +build js,wasm

// Command wasmhost exposes the filter and search engines to the browser
// host page through syscall/js bindings.
package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/newechoes/necmp/internal/codec"
	"github.com/newechoes/necmp/internal/filterengine"
	"github.com/newechoes/necmp/internal/indexmodel"
	"github.com/newechoes/necmp/internal/searchengine"
)

var (
	filters = filterengine.New()
	search  = searchengine.New()
)

func main() {
	c := make(chan struct{}, 0)
	fmt.Println("NECMP host initializing...")

	filterNS := js.Global().Get("Object").New()
	filterNS.Set("init", js.FuncOf(initFilter))
	filterNS.Set("get_all_tags", js.FuncOf(getAllTags))
	filterNS.Set("filter_articles", js.FuncOf(filterArticles))
	js.Global().Set("filter", filterNS)

	searchNS := js.Global().Get("Object").New()
	searchNS.Set("init", js.FuncOf(initSearch))
	searchNS.Set("search_articles", js.FuncOf(searchArticles))
	js.Global().Set("search", searchNS)

	fmt.Println("NECMP host ready")
	<-c
}

// initFilter(url) -> Promise<number totalArticles>
func initFilter(this js.Value, args []js.Value) interface{} {
	return loadIndex(args, func(data []byte) (interface{}, error) {
		var idx indexmodel.FilterIndex
		if err := codec.Decode(data, codec.FilterVersion[0], &idx); err != nil {
			return nil, err
		}
		filters.Init(idx)
		return len(idx.Articles), nil
	})
}

// initSearch(url) -> Promise<number totalArticles>
func initSearch(this js.Value, args []js.Value) interface{} {
	return loadIndex(args, func(data []byte) (interface{}, error) {
		var idx indexmodel.SearchIndex
		if err := codec.Decode(data, codec.SearchMaxMajor, &idx); err != nil {
			return nil, err
		}
		search.Init(idx)
		return len(idx.Articles), nil
	})
}

func getAllTags(this js.Value, args []js.Value) interface{} {
	tags, err := filters.AllTags()
	if err != nil {
		return jsError(err)
	}
	return toJSValue(tags)
}

func filterArticles(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return jsError(fmt.Errorf("filter_articles: missing params"))
	}
	var params struct {
		Tags  []string `json:"tags"`
		Sort  string   `json:"sort"`
		Page  int      `json:"page"`
		Limit int      `json:"limit"`
		Date  string   `json:"date"`
	}
	if err := json.Unmarshal([]byte(js.Global().Get("JSON").Call("stringify", args[0]).String()), &params); err != nil {
		return jsError(err)
	}

	result, err := filters.Filter(filterengine.Params{
		Tags:  params.Tags,
		Sort:  filterengine.SortMode(params.Sort),
		Page:  params.Page,
		Limit: params.Limit,
		Date:  params.Date,
	})
	if err != nil {
		return jsError(err)
	}
	return toJSValue(result)
}

func searchArticles(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return jsError(fmt.Errorf("search_articles: missing request"))
	}
	var req searchengine.Request
	if err := json.Unmarshal([]byte(js.Global().Get("JSON").Call("stringify", args[0]).String()), &req); err != nil {
		return jsError(err)
	}

	result, err := search.Search(req)
	if err != nil {
		return jsError(err)
	}
	return toJSValue(result)
}

// loadIndex fetches url and hands the raw NECMP bytes to decode, which
// decompresses them, installs the engine, and returns the JS resolve value.
// Mirrors the teacher's fetch handshake, generalized to any decoder; no
// browser-side DecompressionStream step is used.
func loadIndex(args []js.Value, decode func([]byte) (interface{}, error)) interface{} {
	if len(args) < 1 {
		return js.Global().Get("Promise").Call("reject", "missing url")
	}
	url := args[0].String()

	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve := args[0]
		reject := args[1]

		go func() {
			data, err := fetchBytes(url)
			if err != nil {
				reject.Invoke(fmt.Sprintf("fetch error: %v", err))
				return
			}
			value, err := decode(data)
			if err != nil {
				reject.Invoke(fmt.Sprintf("decode error: %v", err))
				return
			}
			resolve.Invoke(js.ValueOf(value))
		}()

		return nil
	})

	return js.Global().Get("Promise").New(handler)
}

// fetchBytes retrieves url via the browser fetch API and returns the raw
// response body, letting NECMP's own gzip framing handle decompression.
func fetchBytes(url string) ([]byte, error) {
	ch := make(chan interface{}, 1)

	window := js.Global()
	promise := window.Call("fetch", url)

	success := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resp := args[0]
		if !resp.Get("ok").Bool() {
			ch <- fmt.Errorf("bad status: %s", resp.Get("statusText").String())
			return nil
		}

		bufPromise := resp.Call("arrayBuffer")
		bufSuccess := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			buf := args[0]
			uint8Array := window.Get("Uint8Array").New(buf)
			dst := make([]byte, uint8Array.Length())
			js.CopyBytesToGo(dst, uint8Array)
			ch <- dst
			return nil
		})
		bufPromise.Call("then", bufSuccess)
		return nil
	})

	failure := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ch <- fmt.Errorf("fetch failed")
		return nil
	})

	promise.Call("then", success, failure)

	result := <-ch
	if err, ok := result.(error); ok {
		return nil, err
	}
	return result.([]byte), nil
}

// toJSValue round-trips v through JSON so nested struct trees (e.g. a
// HeadingNode tree) cross the JS boundary as plain objects rather than
// relying on js.ValueOf's limited type support.
func toJSValue(v interface{}) js.Value {
	data, err := json.Marshal(v)
	if err != nil {
		return jsError(err)
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

func jsError(err error) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("error", err.Error())
	return obj
}
